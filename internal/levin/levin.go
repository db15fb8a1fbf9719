// Package levin implements the command line operations on the account
// dialog list:  listing and leaving.
package levin

import (
	"context"

	"github.com/rusq/leavemychat/internal/dlg"
)

// Telegramer is the client interface required by the operations in this
// package and by the UI.
type Telegramer interface {
	GetDialogs(ctx context.Context, cb func(n int)) ([]dlg.Dialog, error)
	DeleteDialog(ctx context.Context, d dlg.Dialog) error
	DialogCount(ctx context.Context) (int, error)
}
