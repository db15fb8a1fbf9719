package dlg

import (
	"fmt"
	"strings"

	"github.com/gotd/td/tg"
)

// Dialog is a single entry of the dialog list, resolved against the users
// and chats that arrived in the same chunk.  It is self contained: no
// further lookups are needed to address the conversation.
type Dialog struct {
	// Raw is the dialog as it came off the wire.
	Raw tg.DialogClass
	// Last is the top message of the dialog, nil if the server did not
	// send one.
	Last tg.MessageClass

	ent   any // *tg.User, *tg.Chat, *tg.ChatForbidden, *tg.Channel, etc.
	input tg.InputPeerClass
	title string
	kind  string
}

// InputPeer returns the projection of the dialog peer suitable for use in
// requests, including as the offset peer of the next getDialogs page.
func (d Dialog) InputPeer() tg.InputPeerClass { return d.input }

// ID returns the bare peer ID of the dialog.
func (d Dialog) ID() int64 {
	switch p := d.Raw.GetPeer().(type) {
	case *tg.PeerUser:
		return p.UserID
	case *tg.PeerChat:
		return p.ChatID
	case *tg.PeerChannel:
		return p.ChannelID
	}
	return 0
}

// Title returns the display title of the dialog:  the chat or channel
// title, or the name of the user.
func (d Dialog) Title() string { return d.title }

// Kind returns the telegram type name of the dialog peer, i.e. "user",
// "chat" or "channel".
func (d Dialog) Kind() string { return d.kind }

// User returns the user entity, if the dialog is a conversation with a
// user.
func (d Dialog) User() (*tg.User, bool) {
	u, ok := d.ent.(*tg.User)
	return u, ok
}

// Chat returns the chat entity, if the dialog is a basic group.
func (d Dialog) Chat() (*tg.Chat, bool) {
	c, ok := d.ent.(*tg.Chat)
	return c, ok
}

// Channel returns the channel entity, if the dialog is a channel or a
// supergroup.
func (d Dialog) Channel() (*tg.Channel, bool) {
	c, ok := d.ent.(*tg.Channel)
	return c, ok
}

// entitySet is the lookup table built from the side collections of a
// single chunk.  It is read-only once built.
type entitySet struct {
	users map[int64]tg.UserClass
	chats map[int64]tg.ChatClass
}

func newEntitySet(users []tg.UserClass, chats []tg.ChatClass) entitySet {
	es := entitySet{
		users: make(map[int64]tg.UserClass, len(users)),
		chats: make(map[int64]tg.ChatClass, len(chats)),
	}
	for _, u := range users {
		es.users[u.GetID()] = u
	}
	for _, c := range chats {
		es.chats[c.GetID()] = c
	}
	return es
}

// lookup resolves a peer reference against the side tables.
func (es entitySet) lookup(peer tg.PeerClass) (any, bool) {
	switch p := peer.(type) {
	case *tg.PeerUser:
		if u, ok := es.users[p.UserID]; ok {
			return u, true
		}
	case *tg.PeerChat:
		if c, ok := es.chats[p.ChatID]; ok {
			return c, true
		}
	case *tg.PeerChannel:
		if c, ok := es.chats[p.ChannelID]; ok {
			return c, true
		}
	}
	return nil, false
}

// decode resolves a raw dialog into a Dialog using the entities and
// messages that arrived with it.
func decode(raw tg.DialogClass, messages []tg.MessageClass, ents entitySet) (Dialog, error) {
	peer := raw.GetPeer()
	ent, ok := ents.lookup(peer)
	if !ok {
		return Dialog{}, fmt.Errorf("%w: no entity for peer %s in the side tables", ErrContract, peer.TypeName())
	}

	d := Dialog{Raw: raw, ent: ent, Last: topMessage(raw, messages)}
	if err := d.project(); err != nil {
		return Dialog{}, err
	}
	return d, nil
}

// project fills in the input peer, title and kind from the resolved
// entity.
func (d *Dialog) project() error {
	switch e := d.ent.(type) {
	case *tg.User:
		d.input = e.AsInputPeer()
		d.title = userName(e)
		d.kind = e.TypeInfo().Name
	case *tg.UserEmpty:
		d.input = &tg.InputPeerEmpty{}
		d.kind = e.TypeInfo().Name
	case *tg.Chat:
		d.input = e.AsInputPeer()
		d.title = e.Title
		d.kind = e.TypeInfo().Name
	case *tg.ChatForbidden:
		d.input = &tg.InputPeerChat{ChatID: e.ID}
		d.title = e.Title
		d.kind = e.TypeInfo().Name
	case *tg.ChatEmpty:
		d.input = &tg.InputPeerEmpty{}
		d.kind = e.TypeInfo().Name
	case *tg.Channel:
		d.input = e.AsInputPeer()
		d.title = e.Title
		d.kind = e.TypeInfo().Name
	case *tg.ChannelForbidden:
		d.input = &tg.InputPeerChannel{ChannelID: e.ID, AccessHash: e.AccessHash}
		d.title = e.Title
		d.kind = e.TypeInfo().Name
	default:
		return fmt.Errorf("%w: unknown entity type %T", ErrContract, d.ent)
	}
	return nil
}

func userName(u *tg.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.Username
	}
	return name
}

// topMessage finds the top message of the dialog in the chunk's message
// collection.
func topMessage(raw tg.DialogClass, messages []tg.MessageClass) tg.MessageClass {
	for _, m := range messages {
		if m.GetID() != raw.GetTopMessage() {
			continue
		}
		if peer, ok := messagePeer(m); !ok || samePeer(peer, raw.GetPeer()) {
			return m
		}
	}
	return nil
}

func messagePeer(m tg.MessageClass) (tg.PeerClass, bool) {
	switch msg := m.(type) {
	case *tg.Message:
		return msg.PeerID, true
	case *tg.MessageService:
		return msg.PeerID, true
	case *tg.MessageEmpty:
		return msg.GetPeerID()
	}
	return nil, false
}

func samePeer(a, b tg.PeerClass) bool {
	switch ap := a.(type) {
	case *tg.PeerUser:
		bp, ok := b.(*tg.PeerUser)
		return ok && ap.UserID == bp.UserID
	case *tg.PeerChat:
		bp, ok := b.(*tg.PeerChat)
		return ok && ap.ChatID == bp.ChatID
	case *tg.PeerChannel:
		bp, ok := b.(*tg.PeerChannel)
		return ok && ap.ChannelID == bp.ChannelID
	}
	return false
}
