package dlg

import (
	"testing"

	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_entitySet_lookup(t *testing.T) {
	es := newEntitySet(
		[]tg.UserClass{testUser(1)},
		[]tg.ChatClass{testChat(2), testChannel(3)},
	)

	tests := []struct {
		name   string
		peer   tg.PeerClass
		want   any
		wantOk bool
	}{
		{"user", &tg.PeerUser{UserID: 1}, testUser(1), true},
		{"chat", &tg.PeerChat{ChatID: 2}, testChat(2), true},
		{"channel", &tg.PeerChannel{ChannelID: 3}, testChannel(3), true},
		{"missing user", &tg.PeerUser{UserID: 99}, nil, false},
		{"missing channel", &tg.PeerChannel{ChannelID: 99}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := es.lookup(tt.peer)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func Test_decode(t *testing.T) {
	user := testUser(1)
	channel := testChannel(3)
	ents := newEntitySet([]tg.UserClass{user}, []tg.ChatClass{channel})

	t.Run("user dialog", func(t *testing.T) {
		msgs := []tg.MessageClass{userMessage(15, 3000, 1)}
		d, err := decode(userDialog(1, 15), msgs, ents)
		require.NoError(t, err)

		assert.Equal(t, int64(1), d.ID())
		assert.Equal(t, "User 1", d.Title())
		require.NotNil(t, d.Last)
		assert.Equal(t, 15, d.Last.GetID())
		require.IsType(t, &tg.InputPeerUser{}, d.InputPeer())
		ip := d.InputPeer().(*tg.InputPeerUser)
		assert.Equal(t, user.ID, ip.UserID)
		assert.Equal(t, user.AccessHash, ip.AccessHash)
	})

	t.Run("channel dialog without top message", func(t *testing.T) {
		raw := &tg.Dialog{Peer: &tg.PeerChannel{ChannelID: 3}, TopMessage: 8}
		d, err := decode(raw, nil, ents)
		require.NoError(t, err)

		assert.Nil(t, d.Last)
		assert.Equal(t, "Channel 3", d.Title())
		ch, ok := d.Channel()
		require.True(t, ok)
		assert.Equal(t, channel.ID, ch.ID)
	})

	t.Run("missing entity", func(t *testing.T) {
		_, err := decode(userDialog(99, 1), nil, ents)
		assert.ErrorIs(t, err, ErrContract)
	})
}

func Test_topMessage(t *testing.T) {
	// two peers have messages with the same ID; the dialog peer decides
	// which one is the top message.
	msgs := []tg.MessageClass{
		userMessage(7, 100, 1),
		&tg.Message{ID: 7, Date: 200, PeerID: &tg.PeerChannel{ChannelID: 3}},
	}

	got := topMessage(&tg.Dialog{Peer: &tg.PeerChannel{ChannelID: 3}, TopMessage: 7}, msgs)
	require.NotNil(t, got)
	assert.Equal(t, 200, got.(*tg.Message).Date)

	assert.Nil(t, topMessage(userDialog(2, 7), msgs))
}

func Test_userName(t *testing.T) {
	tests := []struct {
		name string
		user *tg.User
		want string
	}{
		{"first and last", &tg.User{FirstName: "John", LastName: "Doe"}, "John Doe"},
		{"first only", &tg.User{FirstName: "John"}, "John"},
		{"username fallback", &tg.User{Username: "jdoe"}, "jdoe"},
		{"nothing to show", &tg.User{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, userName(tt.user))
		})
	}
}
