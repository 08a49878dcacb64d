package ports

import (
	"context"

	"github.com/bnema/topicd/internal/domain"
)

// ChatClient is the slice of the chat platform the rotation core needs.
// Implementations return domain.ErrTopicNotFound or domain.ErrTopicClosed
// (wrapped) when a topic is gone or no longer writable.
type ChatClient interface {
	ListTopics(ctx context.Context, chatID domain.ChatID) ([]domain.Topic, error)
	Topic(ctx context.Context, chatID domain.ChatID, topicID domain.TopicID) (domain.Topic, error)
	// RecentMessages returns up to limit of the newest messages, oldest first.
	RecentMessages(ctx context.Context, chatID domain.ChatID, topicID domain.TopicID, limit int) ([]domain.Message, error)
	CreateTopic(ctx context.Context, chatID domain.ChatID, title string) (domain.TopicID, error)
	RenameTopic(ctx context.Context, chatID domain.ChatID, topicID domain.TopicID, title string) error
	// SendMessage returns the id of the sent message, or 0 when the platform
	// did not report it.
	SendMessage(ctx context.Context, chatID domain.ChatID, topicID domain.TopicID, text string) (domain.MessageID, error)
}
