package levin

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/rusq/leavemychat/internal/dlg"
)

// List prints the dialogs of the account to w, one per line, sorted by
// title.
func List(ctx context.Context, w io.Writer, cl Telegramer) error {
	dialogs, err := cl.GetDialogs(ctx, nil)
	if err != nil {
		return err
	}
	SortByTitle(dialogs)
	for _, d := range dialogs {
		if _, err := fmt.Fprintf(w, "%15d  %-14s  %s\n", d.ID(), d.Kind(), d.Title()); err != nil {
			return err
		}
	}
	return nil
}

// SortByTitle sorts dialogs by title in place.
func SortByTitle(dialogs []dlg.Dialog) {
	sort.Slice(dialogs, func(i, j int) bool {
		return dialogs[i].Title() < dialogs[j].Title()
	})
}
