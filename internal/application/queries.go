package application

import (
	"context"
	"time"

	"github.com/bnema/topicd/internal/domain"
	"github.com/bnema/topicd/internal/ports"
)

type RotationSummary struct {
	TopicID      domain.TopicID `json:"topic_id"`
	Subject      string         `json:"subject"`
	NewGeneralID domain.TopicID `json:"new_general_id"`
	RotatedAt    time.Time      `json:"rotated_at"`
}

// ChatStatus is the persisted view of one monitored chat. Building it never
// touches the network.
type ChatStatus struct {
	ChatID              domain.ChatID     `json:"chat_id"`
	Name                string            `json:"name"`
	GeneralTopicID      domain.TopicID    `json:"general_topic_id"`
	LastProcessedMarker domain.MessageID  `json:"last_processed_marker"`
	GeneralCreatedAt    time.Time         `json:"general_created_at,omitzero"`
	LastRotatedAt       time.Time         `json:"last_rotated_at,omitzero"`
	ExemptTopics        []domain.TopicID  `json:"exempt_topics,omitempty"`
	Tracked             bool              `json:"tracked"`
	Rotations           []RotationSummary `json:"rotations,omitempty"`
}

// Statuses reports every configured chat in configuration order, newest
// rotation first. A corrupt state file is reported as err alongside the
// defaults so callers can still show something.
func Statuses(ctx context.Context, chats []domain.MonitoredChat, states ports.StateRepository) ([]ChatStatus, error) {
	loaded, err := states.Load(ctx)
	if loaded == nil {
		loaded = domain.RotationStates{}
	}

	statuses := make([]ChatStatus, 0, len(chats))
	for _, chat := range chats {
		_, tracked := loaded[chat.ID]
		state := loaded.Get(chat.ID)

		status := ChatStatus{
			ChatID:              chat.ID,
			Name:                chat.DisplayName(),
			GeneralTopicID:      state.GeneralTopicID,
			LastProcessedMarker: state.LastProcessedMarker,
			GeneralCreatedAt:    state.GeneralCreatedAt,
			LastRotatedAt:       state.LastRotatedAt,
			ExemptTopics:        chat.ExemptTopics,
			Tracked:             tracked,
		}
		for i := len(state.Rotations) - 1; i >= 0; i-- {
			record := state.Rotations[i]
			status.Rotations = append(status.Rotations, RotationSummary{
				TopicID:      record.TopicID,
				Subject:      record.Subject,
				NewGeneralID: record.NewGeneralID,
				RotatedAt:    record.RotatedAt,
			})
		}

		statuses = append(statuses, status)
	}

	return statuses, err
}
