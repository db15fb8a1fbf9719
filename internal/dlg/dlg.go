// Package dlg implements enumeration and deletion of the account dialogs
// (open conversations) on top of the raw telegram API.
//
// The Iterator pages through messages.getDialogs responses, deriving the
// offsets for each subsequent request from the messages of the previous
// chunk, the way the official clients do.  Delete removes a single dialog
// from the caller's dialog list, dispatching to the appropriate API call
// for the peer type.
package dlg

import (
	"context"
	"errors"

	"github.com/gotd/td/tg"
)

// API is the subset of the raw telegram client that this package calls.
// *tg.Client satisfies it.
type API interface {
	MessagesGetDialogs(ctx context.Context, request *tg.MessagesGetDialogsRequest) (tg.MessagesDialogsClass, error)
	MessagesDeleteHistory(ctx context.Context, request *tg.MessagesDeleteHistoryRequest) (*tg.MessagesAffectedHistory, error)
	MessagesDeleteChatUser(ctx context.Context, request *tg.MessagesDeleteChatUserRequest) (tg.UpdatesClass, error)
	ChannelsLeaveChannel(ctx context.Context, channel tg.InputChannelClass) (tg.UpdatesClass, error)
}

// ErrContract is returned when the server response violates the documented
// API contract, for example when messages.dialogsNotModified arrives in
// response to a request with a zero hash, or when a response references an
// unknown constructor.  It is not recoverable.
var ErrContract = errors.New("telegram api contract violation")
