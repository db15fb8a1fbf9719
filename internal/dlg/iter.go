package dlg

import (
	"context"
	"fmt"

	"github.com/gotd/td/tg"
)

// maxPageSize is the largest page the server will return in one
// getDialogs call.
const maxPageSize = 100

// Iterator pages through the account dialogs.  It buffers one chunk of
// decoded dialogs at a time and goes back to the server only when the
// buffer runs dry.  The usual loop:
//
//	it := dlg.NewIterator(cl.API())
//	for it.Next(ctx) {
//		d := it.Value()
//		// ...
//	}
//	if err := it.Err(); err != nil {
//		return err
//	}
//
// An Iterator holds mutable cursor state and is not safe for concurrent
// use.
type Iterator struct {
	api API

	// req is the cursor: its offset fields are derived from the content
	// of the previous chunk.  Hash stays zero, so the server must never
	// reply with dialogsNotModified.
	req tg.MessagesGetDialogsRequest

	buf   []Dialog
	value Dialog
	err   error

	limit   int // max dialogs to return, 0 for no limit
	fetched int

	total     int
	haveTotal bool
	lastChunk bool
}

// NewIterator returns a new iterator over the dialogs of the account that
// api is authorized for.
func NewIterator(api API) *Iterator {
	return &Iterator{
		api: api,
		req: tg.MessagesGetDialogsRequest{
			OffsetPeer: &tg.InputPeerEmpty{},
		},
	}
}

// WithLimit caps the number of dialogs the iterator returns.  Zero means
// no cap.  It must be called before the first Next.
func (it *Iterator) WithLimit(n int) *Iterator {
	it.limit = n
	return it
}

// Next advances the iterator, fetching the next chunk from the server if
// the buffer is empty.  It returns false when there are no dialogs left
// or an error occurred; the error is available via Err.
func (it *Iterator) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}
	if it.limit > 0 && it.fetched >= it.limit {
		return false
	}
	if len(it.buf) == 0 {
		if it.lastChunk {
			return false
		}
		if err := it.fetch(ctx); err != nil {
			it.err = err
			return false
		}
		if len(it.buf) == 0 {
			// an empty chunk; fetch marked the iterator terminal.
			return false
		}
	}
	it.value, it.buf = it.buf[0], it.buf[1:]
	it.fetched++
	return true
}

// Value returns the dialog fetched by the last successful call to Next.
func (it *Iterator) Value() Dialog { return it.value }

// Err returns the error that stopped the iteration, if any.
func (it *Iterator) Err() error { return it.err }

// Total returns the total number of dialogs of the account.  The value
// reported by the server on the first fetch is memoized, so this performs
// a network call only if nothing has been fetched yet.  Note that for
// partial responses the server count is an estimate and is taken as is.
func (it *Iterator) Total(ctx context.Context) (int, error) {
	if it.haveTotal {
		return it.total, nil
	}

	it.req.Limit = 1
	resp, err := it.api.MessagesGetDialogs(ctx, &it.req)
	if err != nil {
		return 0, err
	}
	switch d := resp.(type) {
	case *tg.MessagesDialogs:
		it.total = len(d.Dialogs)
	case *tg.MessagesDialogsSlice:
		it.total = d.Count
	case *tg.MessagesDialogsNotModified:
		it.total = d.Count
	default:
		return 0, fmt.Errorf("%w: unknown dialogs response %T", ErrContract, resp)
	}
	it.haveTotal = true
	return it.total, nil
}

// fetch performs one getDialogs round trip and refills the buffer.  The
// cursor offsets and the buffer are only modified once the call has fully
// completed, so a failed or cancelled fetch leaves the iterator in the
// state it was in before the call.
func (it *Iterator) fetch(ctx context.Context) error {
	it.req.Limit = it.pageSize()

	resp, err := it.api.MessagesGetDialogs(ctx, &it.req)
	if err != nil {
		return err
	}

	var (
		dialogs  []tg.DialogClass
		messages []tg.MessageClass
		users    []tg.UserClass
		chats    []tg.ChatClass
	)
	switch d := resp.(type) {
	case *tg.MessagesDialogs:
		it.lastChunk = true
		it.total, it.haveTotal = len(d.Dialogs), true
		dialogs, messages, users, chats = d.Dialogs, d.Messages, d.Users, d.Chats
	case *tg.MessagesDialogsSlice:
		it.lastChunk = len(d.Dialogs) < it.req.Limit
		// the slice count is the server estimate of the grand total, not
		// a per-chunk value, so it replaces whatever we had.
		it.total, it.haveTotal = d.Count, true
		dialogs, messages, users, chats = d.Dialogs, d.Messages, d.Users, d.Chats
	case *tg.MessagesDialogsNotModified:
		return fmt.Errorf("%w: dialogsNotModified in response to a zero hash", ErrContract)
	default:
		return fmt.Errorf("%w: unknown dialogs response %T", ErrContract, resp)
	}

	ents := newEntitySet(users, chats)
	decoded := make([]Dialog, 0, len(dialogs))
	for _, raw := range dialogs {
		d, err := decode(raw, messages, ents)
		if err != nil {
			return err
		}
		decoded = append(decoded, d)
	}
	it.buf = append(it.buf, decoded...)

	if !it.lastChunk && len(it.buf) > 0 {
		// pinned dialogs are only sent on the first page.
		it.req.ExcludePinned = true
		for i := len(it.buf) - 1; i >= 0; i-- {
			if it.buf[i].Last == nil {
				continue
			}
			if err := it.deriveOffset(it.buf[i].Last); err != nil {
				return err
			}
			break
		}
		it.req.OffsetPeer = it.buf[len(it.buf)-1].InputPeer()
	}
	return nil
}

// deriveOffset updates the cursor offsets from the newest message of the
// chunk.  An empty placeholder message carries no timestamp, so it only
// moves the ID offset and the previous date offset stays.
func (it *Iterator) deriveOffset(msg tg.MessageClass) error {
	switch m := msg.(type) {
	case *tg.Message:
		it.req.OffsetDate = m.Date
		it.req.OffsetID = m.ID
	case *tg.MessageService:
		it.req.OffsetDate = m.Date
		it.req.OffsetID = m.ID
	case *tg.MessageEmpty:
		it.req.OffsetID = m.ID
	default:
		return fmt.Errorf("%w: unknown message type %T", ErrContract, msg)
	}
	return nil
}

func (it *Iterator) pageSize() int {
	size := maxPageSize
	if it.limit > 0 {
		if left := it.limit - it.fetched; left < size {
			size = left
		}
	}
	return size
}
