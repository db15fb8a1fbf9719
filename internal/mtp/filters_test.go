package mtp

import (
	"context"
	"testing"

	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rusq/leavemychat/internal/dlg"
)

// dialogsStub implements dlg.API returning a fixed set of dialogs:  a
// user, a basic group, a megagroup and a broadcast channel.
type dialogsStub struct{}

func (dialogsStub) MessagesGetDialogs(_ context.Context, _ *tg.MessagesGetDialogsRequest) (tg.MessagesDialogsClass, error) {
	return &tg.MessagesDialogs{
		Dialogs: []tg.DialogClass{
			&tg.Dialog{Peer: &tg.PeerUser{UserID: 1}},
			&tg.Dialog{Peer: &tg.PeerChat{ChatID: 2}},
			&tg.Dialog{Peer: &tg.PeerChannel{ChannelID: 3}},
			&tg.Dialog{Peer: &tg.PeerChannel{ChannelID: 4}},
		},
		Users: []tg.UserClass{&tg.User{ID: 1, FirstName: "John"}},
		Chats: []tg.ChatClass{
			&tg.Chat{ID: 2, Title: "friends"},
			&tg.Channel{ID: 3, Title: "announcements", Broadcast: true},
			&tg.Channel{ID: 4, Title: "flood", Megagroup: true},
		},
	}, nil
}

func (dialogsStub) MessagesDeleteHistory(_ context.Context, _ *tg.MessagesDeleteHistoryRequest) (*tg.MessagesAffectedHistory, error) {
	return &tg.MessagesAffectedHistory{}, nil
}

func (dialogsStub) MessagesDeleteChatUser(_ context.Context, _ *tg.MessagesDeleteChatUserRequest) (tg.UpdatesClass, error) {
	return &tg.Updates{}, nil
}

func (dialogsStub) ChannelsLeaveChannel(_ context.Context, _ tg.InputChannelClass) (tg.UpdatesClass, error) {
	return &tg.Updates{}, nil
}

func stubDialogs(t *testing.T) []dlg.Dialog {
	t.Helper()
	it := dlg.NewIterator(dialogsStub{})
	var dd []dlg.Dialog
	for it.Next(context.Background()) {
		dd = append(dd, it.Value())
	}
	require.NoError(t, it.Err())
	require.Len(t, dd, 4)
	return dd
}

func ids(dd []dlg.Dialog) []int64 {
	var out []int64
	for _, d := range dd {
		out = append(out, d.ID())
	}
	return out
}

func TestFilter(t *testing.T) {
	dialogs := stubDialogs(t)

	tests := []struct {
		name string
		fn   FilterFunc
		want []int64
	}{
		{"all", FilterAll(), []int64{1, 2, 3, 4}},
		{"chats", FilterChats(), []int64{2, 4}},
		{"channels", FilterChannels(), []int64{3}},
		{"users", FilterUsers(), []int64{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(dialogs, tt.fn)))
		})
	}
}
