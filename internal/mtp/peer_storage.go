package mtp

import (
	"context"
	"sort"
	"sync"

	"github.com/gotd/contrib/storage"
)

// MemStorage is the default peer storage.  It keeps all peers in a map,
// so it is not persistent, but it is enough for a single run.
type MemStorage struct {
	mu sync.RWMutex
	s  map[string]storage.Peer
}

var _ storage.PeerStorage = (*MemStorage)(nil)

func NewMemStorage() *MemStorage {
	return &MemStorage{
		s: make(map[string]storage.Peer),
	}
}

func (ms *MemStorage) Add(_ context.Context, value storage.Peer) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.s[storage.KeyFromPeer(value).String()] = value
	return nil
}

func (ms *MemStorage) Find(ctx context.Context, key storage.PeerKey) (storage.Peer, error) {
	return ms.Resolve(ctx, key.String())
}

func (ms *MemStorage) Assign(_ context.Context, key string, value storage.Peer) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.s[key] = value
	return nil
}

func (ms *MemStorage) Resolve(_ context.Context, key string) (storage.Peer, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	peer, ok := ms.s[key]
	if !ok {
		return storage.Peer{}, storage.ErrPeerNotFound
	}
	return peer, nil
}

// Iterate returns an iterator over a point-in-time snapshot of the
// storage, in the lexicographic order of peer keys.  Adding peers while
// iterating does not affect the snapshot.
func (ms *MemStorage) Iterate(ctx context.Context) (storage.PeerIterator, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	ms.mu.RLock()
	keys := make([]string, 0, len(ms.s))
	for k := range ms.s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	peers := make([]storage.Peer, len(keys))
	for i, k := range keys {
		peers[i] = ms.s[k]
	}
	ms.mu.RUnlock()

	return &memIterator{peers: peers, idx: -1}, nil
}

// memIterator iterates over a snapshot of MemStorage.
type memIterator struct {
	peers []storage.Peer
	idx   int
	err   error
}

func (mi *memIterator) Next(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		mi.err = ctx.Err()
		return false
	default:
	}
	mi.idx++
	return mi.idx < len(mi.peers)
}

func (mi *memIterator) Value() storage.Peer {
	if mi.idx < 0 || len(mi.peers) <= mi.idx {
		return storage.Peer{}
	}
	return mi.peers[mi.idx]
}

func (mi *memIterator) Err() error { return mi.err }

func (mi *memIterator) Close() error { return nil }
