package telegram

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/bnema/topicd/internal/domain"
	"github.com/bnema/topicd/internal/platform/logger"
	"github.com/bnema/topicd/internal/ports"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
)

const (
	// generalIconColor is the light blue Telegram uses for new topics.
	generalIconColor = 0x6FB9F0
	maxTopicsPage    = 100
	maxRepliesPage   = 100
)

// Client implements ports.ChatClient over MTProto. It is only valid inside
// the Session.Run callback that created it.
type Client struct {
	api     rpc
	peers   *peerCache
	senders senders
	log     *logger.Logger
}

var _ ports.ChatClient = (*Client)(nil)

func newClient(api rpc, senders senders, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewNop()
	}

	return &Client{
		api:     api,
		peers:   newPeerCache(api),
		senders: senders,
		log:     log.With("component", "TelegramClient"),
	}
}

func (c *Client) ListTopics(ctx context.Context, chatID domain.ChatID) ([]domain.Topic, error) {
	channel, err := c.peers.channel(ctx, chatID)
	if err != nil {
		return nil, err
	}

	response, err := c.api.ChannelsGetForumTopics(ctx, &tg.ChannelsGetForumTopicsRequest{
		Channel: channel,
		Limit:   maxTopicsPage,
	})
	if err != nil {
		return nil, fmt.Errorf("get forum topics: %w", err)
	}

	return toTopics(response.Topics), nil
}

func (c *Client) Topic(ctx context.Context, chatID domain.ChatID, topicID domain.TopicID) (domain.Topic, error) {
	channel, err := c.peers.channel(ctx, chatID)
	if err != nil {
		return domain.Topic{}, err
	}

	response, err := c.api.ChannelsGetForumTopicsByID(ctx, &tg.ChannelsGetForumTopicsByIDRequest{
		Channel: channel,
		Topics:  []int{int(topicID)},
	})
	if err != nil {
		return domain.Topic{}, fmt.Errorf("get forum topic: %w", mapTopicError(topicID, err))
	}

	for _, topic := range toTopics(response.Topics) {
		if topic.ID == topicID {
			return topic, nil
		}
	}

	return domain.Topic{}, fmt.Errorf("topic %d: %w", topicID, domain.ErrTopicNotFound)
}

func (c *Client) RecentMessages(ctx context.Context, chatID domain.ChatID, topicID domain.TopicID, limit int) ([]domain.Message, error) {
	peer, err := c.peers.peer(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > maxRepliesPage {
		limit = maxRepliesPage
	}

	response, err := c.api.MessagesGetReplies(ctx, &tg.MessagesGetRepliesRequest{
		Peer:  peer,
		MsgID: int(topicID),
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("get topic messages: %w", mapTopicError(topicID, err))
	}

	return c.senders.toMessages(messagesOf(response)), nil
}

func (c *Client) CreateTopic(ctx context.Context, chatID domain.ChatID, title string) (domain.TopicID, error) {
	channel, err := c.peers.channel(ctx, chatID)
	if err != nil {
		return 0, err
	}

	randomID, err := randomID()
	if err != nil {
		return 0, err
	}

	request := &tg.ChannelsCreateForumTopicRequest{Channel: channel, Title: title, RandomID: randomID}
	request.SetIconColor(generalIconColor)

	updates, err := c.api.ChannelsCreateForumTopic(ctx, request)
	if err != nil {
		return 0, fmt.Errorf("create forum topic: %w", err)
	}

	if id, ok := createdTopicID(updates); ok {
		return id, nil
	}

	// Some update shapes omit the service message; the new topic is then the
	// newest open one with the requested title.
	c.log.Debug("topic id missing from updates, listing topics", "chat_id", chatID)
	topics, err := c.ListTopics(ctx, chatID)
	if err != nil {
		return 0, err
	}

	var newest domain.TopicID
	for _, topic := range topics {
		if topic.Open() && topic.Title == title && topic.ID > newest {
			newest = topic.ID
		}
	}
	if newest == 0 {
		return 0, fmt.Errorf("create forum topic: new topic %q not found", title)
	}

	return newest, nil
}

func (c *Client) RenameTopic(ctx context.Context, chatID domain.ChatID, topicID domain.TopicID, title string) error {
	channel, err := c.peers.channel(ctx, chatID)
	if err != nil {
		return err
	}

	request := &tg.ChannelsEditForumTopicRequest{Channel: channel, TopicID: int(topicID)}
	request.SetTitle(title)

	if _, err := c.api.ChannelsEditForumTopic(ctx, request); err != nil {
		if tgerr.Is(err, "TOPIC_NOT_MODIFIED") {
			return nil
		}
		return fmt.Errorf("edit forum topic: %w", mapTopicError(topicID, err))
	}

	return nil
}

func (c *Client) SendMessage(ctx context.Context, chatID domain.ChatID, topicID domain.TopicID, text string) (domain.MessageID, error) {
	peer, err := c.peers.peer(ctx, chatID)
	if err != nil {
		return 0, err
	}

	randomID, err := randomID()
	if err != nil {
		return 0, err
	}

	request := &tg.MessagesSendMessageRequest{Peer: peer, Message: text, RandomID: randomID}
	// The built-in General topic takes plain chat messages.
	if topicID != domain.DefaultGeneralTopicID {
		request.SetReplyTo(&tg.InputReplyToMessage{ReplyToMsgID: int(topicID)})
	}

	updates, err := c.api.MessagesSendMessage(ctx, request)
	if err != nil {
		return 0, fmt.Errorf("send message: %w", mapTopicError(topicID, err))
	}

	return sentMessageID(updates, randomID), nil
}

func randomID() (int64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("generate random id: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(buf[:])), nil
}
