package telegram

import (
	"fmt"
	"sort"
	"time"

	"github.com/bnema/topicd/internal/domain"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
)

// senders decides which messages count as automated replies. The configured
// responder accounts always do. Messages from the session account itself only
// do when selfAutomated is set, since that account is usually a person.
type senders struct {
	self          int64
	selfAutomated bool
	responders    map[int64]struct{}
}

func newSenders(self int64, responders []int64, selfAutomated bool) senders {
	set := make(map[int64]struct{}, len(responders))
	for _, id := range responders {
		set[id] = struct{}{}
	}

	return senders{self: self, selfAutomated: selfAutomated, responders: set}
}

func (s senders) kind(out bool, senderID int64) domain.SenderKind {
	if _, ok := s.responders[senderID]; ok && senderID != 0 {
		return domain.SenderAutomated
	}
	if s.selfAutomated && (out || (senderID != 0 && senderID == s.self)) {
		return domain.SenderAutomated
	}

	return domain.SenderHuman
}

// toMessages keeps regular messages only and returns them oldest first.
func (s senders) toMessages(classes []tg.MessageClass) []domain.Message {
	messages := make([]domain.Message, 0, len(classes))
	for _, class := range classes {
		msg, ok := class.(*tg.Message)
		if !ok {
			continue
		}

		var senderID int64
		if msg.FromID != nil {
			senderID = peerID(msg.FromID)
		}

		messages = append(messages, domain.Message{
			ID:       domain.MessageID(msg.ID),
			Kind:     s.kind(msg.Out, senderID),
			SenderID: senderID,
			Text:     msg.Message,
			HasMedia: msg.Media != nil,
			SentAt:   time.Unix(int64(msg.Date), 0).UTC(),
		})
	}

	sort.SliceStable(messages, func(i, j int) bool { return messages[i].ID < messages[j].ID })

	return messages
}

// sentMessageID finds the id Telegram assigned to a message sent with randomID.
// It returns 0 when the updates do not carry it.
func sentMessageID(updates tg.UpdatesClass, randomID int64) domain.MessageID {
	var list []tg.UpdateClass
	switch typed := updates.(type) {
	case *tg.UpdateShortSentMessage:
		return domain.MessageID(typed.ID)
	case *tg.Updates:
		list = typed.Updates
	case *tg.UpdatesCombined:
		list = typed.Updates
	default:
		return 0
	}

	var fallback domain.MessageID
	for _, update := range list {
		var class tg.MessageClass
		switch typed := update.(type) {
		case *tg.UpdateMessageID:
			if typed.RandomID == randomID {
				return domain.MessageID(typed.ID)
			}
			continue
		case *tg.UpdateNewChannelMessage:
			class = typed.Message
		case *tg.UpdateNewMessage:
			class = typed.Message
		default:
			continue
		}
		if msg, ok := class.(*tg.Message); ok && fallback == 0 {
			fallback = domain.MessageID(msg.ID)
		}
	}

	return fallback
}

func peerID(peer tg.PeerClass) int64 {
	switch typed := peer.(type) {
	case *tg.PeerUser:
		return typed.UserID
	case *tg.PeerChannel:
		return typed.ChannelID
	case *tg.PeerChat:
		return typed.ChatID
	default:
		return 0
	}
}

func messagesOf(response tg.MessagesMessagesClass) []tg.MessageClass {
	switch typed := response.(type) {
	case *tg.MessagesMessages:
		return typed.Messages
	case *tg.MessagesMessagesSlice:
		return typed.Messages
	case *tg.MessagesChannelMessages:
		return typed.Messages
	default:
		return nil
	}
}

// toTopics drops deleted topics.
func toTopics(classes []tg.ForumTopicClass) []domain.Topic {
	topics := make([]domain.Topic, 0, len(classes))
	for _, class := range classes {
		topic, ok := class.(*tg.ForumTopic)
		if !ok {
			continue
		}
		topics = append(topics, domain.Topic{ID: domain.TopicID(topic.ID), Title: topic.Title, Closed: topic.Closed})
	}

	return topics
}

// createdTopicID finds the id of a topic created by channels.createForumTopic.
// The topic id equals the id of its topic-create service message.
func createdTopicID(updates tg.UpdatesClass) (domain.TopicID, bool) {
	var list []tg.UpdateClass
	switch typed := updates.(type) {
	case *tg.Updates:
		list = typed.Updates
	case *tg.UpdatesCombined:
		list = typed.Updates
	default:
		return 0, false
	}

	for _, update := range list {
		newMessage, ok := update.(*tg.UpdateNewChannelMessage)
		if !ok {
			continue
		}
		service, ok := newMessage.Message.(*tg.MessageService)
		if !ok {
			continue
		}
		if _, ok := service.Action.(*tg.MessageActionTopicCreate); ok {
			return domain.TopicID(service.ID), true
		}
	}

	return 0, false
}

// mapTopicError translates RPC errors about a topic into domain errors.
func mapTopicError(topicID domain.TopicID, err error) error {
	switch {
	case err == nil:
		return nil
	case tgerr.Is(err, "TOPIC_DELETED", "TOPIC_ID_INVALID", "MESSAGE_ID_INVALID", "MSG_ID_INVALID"):
		return fmt.Errorf("topic %d: %w: %w", topicID, domain.ErrTopicNotFound, err)
	case tgerr.Is(err, "TOPIC_CLOSED"):
		return fmt.Errorf("topic %d: %w: %w", topicID, domain.ErrTopicClosed, err)
	default:
		return err
	}
}
