package mtp

import (
	"context"
	"testing"

	"github.com/gotd/contrib/storage"
	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStorage_addResolve(t *testing.T) {
	ctx := context.Background()
	ms := NewMemStorage()

	peer := storage.Peer{User: &tg.User{ID: 1, FirstName: "John"}}
	require.NoError(t, ms.Add(ctx, peer))

	got, err := ms.Find(ctx, storage.KeyFromPeer(peer))
	require.NoError(t, err)
	assert.Equal(t, peer, got)

	_, err = ms.Resolve(ctx, "no such key")
	assert.ErrorIs(t, err, storage.ErrPeerNotFound)
}

func TestMemStorage_iterate(t *testing.T) {
	ctx := context.Background()
	ms := NewMemStorage()

	peers := []storage.Peer{
		{User: &tg.User{ID: 1}},
		{Chat: &tg.Chat{ID: 2}},
		{Channel: &tg.Channel{ID: 3}},
	}
	for _, p := range peers {
		require.NoError(t, ms.Add(ctx, p))
	}

	iter, err := ms.Iterate(ctx)
	require.NoError(t, err)
	defer iter.Close()

	var got []storage.Peer
	for iter.Next(ctx) {
		got = append(got, iter.Value())
	}
	require.NoError(t, iter.Err())
	assert.Len(t, got, 3)

	// the snapshot is unaffected by concurrent additions.
	require.NoError(t, ms.Add(ctx, storage.Peer{User: &tg.User{ID: 4}}))
	assert.False(t, iter.Next(ctx))
}

func TestMemStorage_iterateCancelled(t *testing.T) {
	ms := NewMemStorage()
	require.NoError(t, ms.Add(context.Background(), storage.Peer{User: &tg.User{ID: 1}}))

	ctx, cancel := context.WithCancel(context.Background())
	iter, err := ms.Iterate(ctx)
	require.NoError(t, err)
	cancel()

	assert.False(t, iter.Next(ctx))
	assert.ErrorIs(t, iter.Err(), context.Canceled)
}
