package levin

import (
	"context"
	"errors"

	"github.com/rusq/dlog"
	"github.com/schollz/progressbar/v3"

	"github.com/rusq/leavemychat/internal/dlg"
)

// ErrNotFound is returned when the requested dialog is not in the dialog
// list.
var ErrNotFound = errors.New("dialog not found")

// Batch leaves the dialogs with the given IDs.  A failure to leave one
// dialog is logged and does not stop the batch.  If dryRun is set, the
// dialogs are located and reported, but nothing is deleted.
func Batch(ctx context.Context, cl Telegramer, ids []int64, dryRun bool) error {
	dialogs, err := cl.GetDialogs(ctx, nil)
	if err != nil {
		return err
	}

	pb := progressbar.Default(int64(len(ids)), "leaving")
	defer pb.Finish()

	for _, id := range ids {
		if err := leave(ctx, cl, dialogs, id, dryRun); err != nil {
			dlog.Printf("SKIPPED: dialog %d: %s", id, err)
		} else if dryRun {
			dlog.Printf("DRY RUN: dialog %d: would be left", id)
		} else {
			dlog.Printf("OK: dialog %d: left", id)
		}
		pb.Add(1)
	}
	return nil
}

func leave(ctx context.Context, cl Telegramer, dialogs []dlg.Dialog, id int64, dryRun bool) error {
	d, err := findByID(dialogs, id)
	if err != nil {
		return err
	}
	if dryRun {
		return nil
	}
	return cl.DeleteDialog(ctx, d)
}

func findByID(dialogs []dlg.Dialog, id int64) (dlg.Dialog, error) {
	for _, d := range dialogs {
		if d.ID() == id {
			return d, nil
		}
	}
	return dlg.Dialog{}, ErrNotFound
}
