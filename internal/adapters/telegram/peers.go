package telegram

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/bnema/topicd/internal/domain"
	"github.com/gotd/td/tg"
)

const (
	dialogsPageSize = 100
	maxDialogPages  = 20
)

// peerCache resolves supergroup ids to input peers. Access hashes are only
// learned from dialogs, so a miss walks the dialog list once and remembers
// every channel it sees.
type peerCache struct {
	api      rpc
	mu       sync.Mutex
	channels map[int64]*tg.InputChannel
}

func newPeerCache(api rpc) *peerCache {
	return &peerCache{api: api, channels: map[int64]*tg.InputChannel{}}
}

func (c *peerCache) channel(ctx context.Context, chatID domain.ChatID) (*tg.InputChannel, error) {
	channelID := chatID.ChannelID()

	c.mu.Lock()
	defer c.mu.Unlock()

	if input, ok := c.channels[channelID]; ok {
		return input, nil
	}

	if err := c.scanDialogs(ctx, channelID); err != nil {
		return nil, err
	}

	input, ok := c.channels[channelID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrChatNotFound, chatID)
	}

	return input, nil
}

func (c *peerCache) peer(ctx context.Context, chatID domain.ChatID) (*tg.InputPeerChannel, error) {
	input, err := c.channel(ctx, chatID)
	if err != nil {
		return nil, err
	}

	return &tg.InputPeerChannel{ChannelID: input.ChannelID, AccessHash: input.AccessHash}, nil
}

func (c *peerCache) scanDialogs(ctx context.Context, want int64) error {
	request := &tg.MessagesGetDialogsRequest{OffsetPeer: &tg.InputPeerEmpty{}, Limit: dialogsPageSize}

	for page := 0; page < maxDialogPages; page++ {
		response, err := c.api.MessagesGetDialogs(ctx, request)
		if err != nil {
			return fmt.Errorf("get dialogs: %w", err)
		}

		var (
			dialogs  []tg.DialogClass
			messages []tg.MessageClass
			chats    []tg.ChatClass
			users    []tg.UserClass
			more     bool
		)
		switch typed := response.(type) {
		case *tg.MessagesDialogs:
			dialogs, messages, chats, users = typed.Dialogs, typed.Messages, typed.Chats, typed.Users
		case *tg.MessagesDialogsSlice:
			dialogs, messages, chats, users = typed.Dialogs, typed.Messages, typed.Chats, typed.Users
			more = len(typed.Dialogs) == dialogsPageSize
		default:
			return nil
		}

		for _, chat := range chats {
			if channel, ok := chat.(*tg.Channel); ok {
				c.channels[channel.ID] = &tg.InputChannel{ChannelID: channel.ID, AccessHash: channel.AccessHash}
			}
		}

		if _, ok := c.channels[want]; ok || !more || len(dialogs) == 0 {
			return nil
		}

		last, ok := dialogs[len(dialogs)-1].(*tg.Dialog)
		if !ok {
			return nil
		}
		offsetPeer, ok := c.inputPeer(last.Peer, users)
		if !ok {
			return nil
		}

		request.OffsetID = last.TopMessage
		request.OffsetDate = messageDate(messages, last.Peer, last.TopMessage)
		request.OffsetPeer = offsetPeer
	}

	return nil
}

func (c *peerCache) inputPeer(peer tg.PeerClass, users []tg.UserClass) (tg.InputPeerClass, bool) {
	switch typed := peer.(type) {
	case *tg.PeerChannel:
		input, ok := c.channels[typed.ChannelID]
		if !ok {
			return nil, false
		}
		return &tg.InputPeerChannel{ChannelID: input.ChannelID, AccessHash: input.AccessHash}, true
	case *tg.PeerChat:
		return &tg.InputPeerChat{ChatID: typed.ChatID}, true
	case *tg.PeerUser:
		for _, user := range users {
			if u, ok := user.(*tg.User); ok && u.ID == typed.UserID {
				return &tg.InputPeerUser{UserID: u.ID, AccessHash: u.AccessHash}, true
			}
		}
	}

	return nil, false
}

func messageDate(messages []tg.MessageClass, peer tg.PeerClass, id int) int {
	want := peerKey(peer)
	for _, msg := range messages {
		switch typed := msg.(type) {
		case *tg.Message:
			if typed.ID == id && peerKey(typed.PeerID) == want {
				return typed.Date
			}
		case *tg.MessageService:
			if typed.ID == id && peerKey(typed.PeerID) == want {
				return typed.Date
			}
		}
	}

	return 0
}

func peerKey(peer tg.PeerClass) string {
	switch typed := peer.(type) {
	case *tg.PeerUser:
		return "user:" + strconv.FormatInt(typed.UserID, 10)
	case *tg.PeerChat:
		return "chat:" + strconv.FormatInt(typed.ChatID, 10)
	case *tg.PeerChannel:
		return "channel:" + strconv.FormatInt(typed.ChannelID, 10)
	default:
		return ""
	}
}
