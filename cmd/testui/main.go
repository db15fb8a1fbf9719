// Command testui emulates the work of the Text UI for making screenshots
package main

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/gotd/td/tg"
	"github.com/rusq/dlog"

	"github.com/rusq/leavemychat/internal/dlg"
	"github.com/rusq/leavemychat/internal/levin"
	"github.com/rusq/leavemychat/internal/tui"
)

const maxFakeLeaveDelay = 2 * time.Second

func main() {
	ctx := context.Background()

	fake, err := NewFakeTelegram(fakeTitles)
	if err != nil {
		dlog.Fatal(err)
	}
	dialogs, err := fake.GetDialogs(ctx, nil)
	if err != nil {
		dlog.Fatal(err)
	}
	levin.SortByTitle(dialogs)

	app := tui.New(ctx, fake)
	if err := app.Run(ctx, dialogs); err != nil {
		dlog.Fatal(err)
	}
}

var fakeTitles = []string{
	"Aunt Gladys",
	"Crypto Signals (100% legit)",
	"Dog Photos Daily",
	"Flat 7 Body Corporate",
	"Garage Sales of Avondale",
	"Grumpy Neighbours Watch",
	"Home Brew Club",
	"Kiwi Memes",
	"Lost & Found: Mt Eden",
	"NZ Fishing Reports",
	"Office Chat (muted since 2019)",
	"Parents of Year 4",
	"Pottery for Beginners",
	"Quiz Night Team",
	"Secret Santa 2021",
	"Sourdough Support Group",
	"The Book Club Nobody Reads In",
	"Tramping Weekends",
	"Uncle Trevor",
	"Weather Bores",
}

// FakeTelegram implements levin.Telegramer over a static set of fake
// dialogs.
type FakeTelegram struct {
	dialogs []dlg.Dialog
}

// NewFakeTelegram generates a fake dialog list with the given titles,
// running it through the real dialog decoder.
func NewFakeTelegram(titles []string) (*FakeTelegram, error) {
	resp := &tg.MessagesDialogs{}
	for i, title := range titles {
		id := int64(i + 1)
		switch i % 3 {
		case 0:
			resp.Dialogs = append(resp.Dialogs, &tg.Dialog{Peer: &tg.PeerUser{UserID: id}})
			resp.Users = append(resp.Users, &tg.User{ID: id, FirstName: title})
		case 1:
			resp.Dialogs = append(resp.Dialogs, &tg.Dialog{Peer: &tg.PeerChat{ChatID: id}})
			resp.Chats = append(resp.Chats, &tg.Chat{ID: id, Title: title})
		default:
			resp.Dialogs = append(resp.Dialogs, &tg.Dialog{Peer: &tg.PeerChannel{ChannelID: id}})
			resp.Chats = append(resp.Chats, &tg.Channel{ID: id, Title: title, Broadcast: i%2 == 0, Megagroup: i%2 == 1})
		}
	}

	it := dlg.NewIterator(replayAPI{resp: resp})
	var dialogs []dlg.Dialog
	for it.Next(context.Background()) {
		dialogs = append(dialogs, it.Value())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return &FakeTelegram{dialogs: dialogs}, nil
}

func (f *FakeTelegram) GetDialogs(_ context.Context, cb func(n int)) ([]dlg.Dialog, error) {
	if cb != nil {
		cb(len(f.dialogs))
	}
	return append([]dlg.Dialog(nil), f.dialogs...), nil
}

func (f *FakeTelegram) DeleteDialog(_ context.Context, d dlg.Dialog) error {
	// pretend it takes a while.
	time.Sleep(rand.N(maxFakeLeaveDelay))
	for i := range f.dialogs {
		if f.dialogs[i].ID() == d.ID() {
			f.dialogs = append(f.dialogs[:i], f.dialogs[i+1:]...)
			return nil
		}
	}
	return errors.New("no such dialog")
}

func (f *FakeTelegram) DialogCount(_ context.Context) (int, error) {
	return len(f.dialogs), nil
}

// replayAPI serves the canned dialogs response to the iterator.
type replayAPI struct {
	resp tg.MessagesDialogsClass
}

func (r replayAPI) MessagesGetDialogs(_ context.Context, _ *tg.MessagesGetDialogsRequest) (tg.MessagesDialogsClass, error) {
	return r.resp, nil
}

func (replayAPI) MessagesDeleteHistory(_ context.Context, _ *tg.MessagesDeleteHistoryRequest) (*tg.MessagesAffectedHistory, error) {
	return &tg.MessagesAffectedHistory{}, nil
}

func (replayAPI) MessagesDeleteChatUser(_ context.Context, _ *tg.MessagesDeleteChatUserRequest) (tg.UpdatesClass, error) {
	return &tg.Updates{}, nil
}

func (replayAPI) ChannelsLeaveChannel(_ context.Context, _ tg.InputChannelClass) (tg.UpdatesClass, error) {
	return &tg.Updates{}, nil
}
