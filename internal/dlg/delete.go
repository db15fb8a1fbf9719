package dlg

import (
	"context"
	"fmt"

	"github.com/gotd/td/tg"
)

// Delete removes the dialog identified by peer from the caller's dialog
// list:  for a user dialog the history is cleared, for a basic group the
// current user is removed from its members, and for a channel or a
// supergroup the current user leaves it.
//
// The dialog is deleted for the current user only.  The conversation
// itself survives:  other participants keep both the chat and its
// history.
func Delete(ctx context.Context, api API, peer tg.InputPeerClass) error {
	switch p := peer.(type) {
	case *tg.InputPeerEmpty:
		return nil
	case *tg.InputPeerSelf, *tg.InputPeerUser, *tg.InputPeerUserFromMessage:
		_, err := api.MessagesDeleteHistory(ctx, &tg.MessagesDeleteHistoryRequest{
			JustClear: false,
			Revoke:    false,
			Peer:      peer,
			MaxID:     0,
		})
		return err
	case *tg.InputPeerChat:
		_, err := api.MessagesDeleteChatUser(ctx, &tg.MessagesDeleteChatUserRequest{
			ChatID: p.ChatID,
			UserID: &tg.InputUserSelf{},
		})
		return err
	case *tg.InputPeerChannel:
		_, err := api.ChannelsLeaveChannel(ctx, &tg.InputChannel{
			ChannelID:  p.ChannelID,
			AccessHash: p.AccessHash,
		})
		return err
	case *tg.InputPeerChannelFromMessage:
		_, err := api.ChannelsLeaveChannel(ctx, &tg.InputChannelFromMessage{
			Peer:      p.Peer,
			MsgID:     p.MsgID,
			ChannelID: p.ChannelID,
		})
		return err
	default:
		return fmt.Errorf("%w: unsupported input peer %T", ErrContract, peer)
	}
}
