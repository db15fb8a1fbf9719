package dlg

import (
	"context"
	"errors"
	"fmt"

	"github.com/gotd/td/tg"
)

// fakeAPI is an in-memory API implementation that replays canned
// getDialogs responses and records every request it receives.
type fakeAPI struct {
	responses []tg.MessagesDialogsClass
	err       error

	getDialogs     []tg.MessagesGetDialogsRequest
	deleteHistory  []tg.MessagesDeleteHistoryRequest
	deleteChatUser []tg.MessagesDeleteChatUserRequest
	leaveChannel   []tg.InputChannelClass
}

func (f *fakeAPI) MessagesGetDialogs(_ context.Context, request *tg.MessagesGetDialogsRequest) (tg.MessagesDialogsClass, error) {
	f.getDialogs = append(f.getDialogs, *request)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return nil, errors.New("fakeAPI: out of responses")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func (f *fakeAPI) MessagesDeleteHistory(_ context.Context, request *tg.MessagesDeleteHistoryRequest) (*tg.MessagesAffectedHistory, error) {
	f.deleteHistory = append(f.deleteHistory, *request)
	return &tg.MessagesAffectedHistory{}, f.err
}

func (f *fakeAPI) MessagesDeleteChatUser(_ context.Context, request *tg.MessagesDeleteChatUserRequest) (tg.UpdatesClass, error) {
	f.deleteChatUser = append(f.deleteChatUser, *request)
	return &tg.Updates{}, f.err
}

func (f *fakeAPI) ChannelsLeaveChannel(_ context.Context, channel tg.InputChannelClass) (tg.UpdatesClass, error) {
	f.leaveChannel = append(f.leaveChannel, channel)
	return &tg.Updates{}, f.err
}

func (f *fakeAPI) calls() int { return len(f.getDialogs) }

//
// fixtures
//

func testUser(id int64) *tg.User {
	return &tg.User{ID: id, AccessHash: id * 10, FirstName: fmt.Sprintf("User %d", id)}
}

func testChat(id int64) *tg.Chat {
	return &tg.Chat{ID: id, Title: fmt.Sprintf("Chat %d", id)}
}

func testChannel(id int64) *tg.Channel {
	return &tg.Channel{ID: id, AccessHash: id * 10, Title: fmt.Sprintf("Channel %d", id)}
}

func userDialog(userID int64, topMessage int) *tg.Dialog {
	return &tg.Dialog{Peer: &tg.PeerUser{UserID: userID}, TopMessage: topMessage}
}

func userMessage(id, date int, userID int64) *tg.Message {
	return &tg.Message{ID: id, Date: date, PeerID: &tg.PeerUser{UserID: userID}}
}

// userPage generates a dialogs slice of n user dialogs with IDs starting
// at start.  The top message of user i has ID 1000+i and date 10000+i.
func userPage(start int64, n, count int) *tg.MessagesDialogsSlice {
	page := &tg.MessagesDialogsSlice{Count: count}
	for id := start; id < start+int64(n); id++ {
		page.Dialogs = append(page.Dialogs, userDialog(id, 1000+int(id)))
		page.Messages = append(page.Messages, userMessage(1000+int(id), 10000+int(id), id))
		page.Users = append(page.Users, testUser(id))
	}
	return page
}
