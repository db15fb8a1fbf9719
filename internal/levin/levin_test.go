package levin

import (
	"context"
	"errors"
	"testing"

	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/require"

	"github.com/rusq/leavemychat/internal/dlg"
)

// stubAPI serves a fixed dialog list to the iterator, so that the tests
// operate on dialogs decoded by the real code path.
type stubAPI struct{}

func (stubAPI) MessagesGetDialogs(_ context.Context, _ *tg.MessagesGetDialogsRequest) (tg.MessagesDialogsClass, error) {
	return &tg.MessagesDialogs{
		Dialogs: []tg.DialogClass{
			&tg.Dialog{Peer: &tg.PeerUser{UserID: 1}},
			&tg.Dialog{Peer: &tg.PeerChat{ChatID: 2}},
			&tg.Dialog{Peer: &tg.PeerChannel{ChannelID: 3}},
		},
		Users: []tg.UserClass{&tg.User{ID: 1, FirstName: "Zed"}},
		Chats: []tg.ChatClass{
			&tg.Chat{ID: 2, Title: "Apples"},
			&tg.Channel{ID: 3, Title: "Mangoes", Broadcast: true},
		},
	}, nil
}

func (stubAPI) MessagesDeleteHistory(_ context.Context, _ *tg.MessagesDeleteHistoryRequest) (*tg.MessagesAffectedHistory, error) {
	return &tg.MessagesAffectedHistory{}, nil
}

func (stubAPI) MessagesDeleteChatUser(_ context.Context, _ *tg.MessagesDeleteChatUserRequest) (tg.UpdatesClass, error) {
	return &tg.Updates{}, nil
}

func (stubAPI) ChannelsLeaveChannel(_ context.Context, _ tg.InputChannelClass) (tg.UpdatesClass, error) {
	return &tg.Updates{}, nil
}

func stubDialogs(t *testing.T) []dlg.Dialog {
	t.Helper()
	it := dlg.NewIterator(stubAPI{})
	var dd []dlg.Dialog
	for it.Next(context.Background()) {
		dd = append(dd, it.Value())
	}
	require.NoError(t, it.Err())
	require.Len(t, dd, 3)
	return dd
}

// fakeTelegram records the deleted dialogs.
type fakeTelegram struct {
	dialogs []dlg.Dialog

	getErr    error
	deleteErr error
	deleted   []int64
}

func (f *fakeTelegram) GetDialogs(_ context.Context, cb func(n int)) ([]dlg.Dialog, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if cb != nil {
		cb(len(f.dialogs))
	}
	return f.dialogs, nil
}

func (f *fakeTelegram) DeleteDialog(_ context.Context, d dlg.Dialog) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, d.ID())
	return nil
}

func (f *fakeTelegram) DialogCount(_ context.Context) (int, error) {
	if f.getErr != nil {
		return 0, f.getErr
	}
	return len(f.dialogs), nil
}

var errBroken = errors.New("broken")
