package mtp

import (
	"context"
	"fmt"
	"runtime/trace"

	"github.com/gotd/contrib/storage"
	"github.com/rusq/dlog"

	"github.com/rusq/leavemychat/internal/dlg"
)

// GetDialogs retrieves all dialogs of the account.  The result is cached
// for defCacheEvict; every peer seen along the way is stashed in the peer
// storage.  The callback, if not nil, is invoked with the number of
// dialogs added as they arrive.
func (c *Client) GetDialogs(ctx context.Context, cb func(n int)) ([]dlg.Dialog, error) {
	ctx, task := trace.NewTask(ctx, "GetDialogs")
	defer task.End()

	if cached, err := c.cache.Get(cacheDialogs); err == nil {
		trace.Log(ctx, "cache", "hit")
		dialogs := cached.([]dlg.Dialog)
		if cb != nil {
			cb(len(dialogs))
		}
		return dialogs, nil
	}
	trace.Log(ctx, "cache", "miss")

	it := dlg.NewIterator(c.cl.API())
	var dialogs []dlg.Dialog
	for it.Next(ctx) {
		d := it.Value()
		dialogs = append(dialogs, d)
		if err := c.stashPeer(ctx, d); err != nil {
			dlog.Debugf("failed to stash peer %d: %s", d.ID(), err)
		}
		if cb != nil {
			cb(1)
		}
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	trace.Logf(ctx, "api", "got %d dialogs", len(dialogs))

	if err := c.cache.SetWithExpire(cacheDialogs, dialogs, defCacheEvict); err != nil {
		return nil, err
	}
	return dialogs, nil
}

// DialogCount returns the total number of dialogs as reported by the
// server, without enumerating them.
func (c *Client) DialogCount(ctx context.Context) (int, error) {
	return dlg.NewIterator(c.cl.API()).Total(ctx)
}

// DeleteDialog removes the dialog d from the current user's dialog list.
// For groups and channels this means leaving them.  The conversation
// itself stays intact for all other participants.
func (c *Client) DeleteDialog(ctx context.Context, d dlg.Dialog) error {
	ctx, task := trace.NewTask(ctx, "DeleteDialog")
	defer task.End()

	if err := dlg.Delete(ctx, c.cl.API(), d.InputPeer()); err != nil {
		trace.Logf(ctx, "api", "delete error: %s", err)
		return fmt.Errorf("failed to delete dialog %d: %w", d.ID(), err)
	}
	// the dialog list has changed.
	if c.cache.Remove(cacheDialogs) {
		trace.Log(ctx, "logic", "cache cleared")
	}
	return nil
}

// stashPeer saves the dialog peer entity in the peer storage, so that it
// can be resolved later without hitting the API.
func (c *Client) stashPeer(ctx context.Context, d dlg.Dialog) error {
	var p storage.Peer
	if u, ok := d.User(); ok {
		p.User = u
	} else if ch, ok := d.Chat(); ok {
		p.Chat = ch
	} else if cn, ok := d.Channel(); ok {
		p.Channel = cn
	} else {
		// forbidden or empty peers are not worth stashing.
		return nil
	}
	return c.storage.Add(ctx, p)
}
