package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/topicd/internal/domain"
	"github.com/bnema/topicd/internal/platform/logger"
	"github.com/bnema/topicd/internal/ports"
)

type Rotator struct {
	client ports.ChatClient
	clock  ports.Clock
	log    *logger.Logger
}

type RotationRequest struct {
	Chat    domain.MonitoredChat
	State   domain.RotationState
	TopicID domain.TopicID
	Subject string
	Marker  domain.MessageID
}

type RotationResult struct {
	State        domain.RotationState
	NewGeneralID domain.TopicID
	Renamed      bool
	WelcomeSent  bool
}

func NewRotator(client ports.ChatClient, clock ports.Clock, log *logger.Logger) *Rotator {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = logger.NewNop()
	}

	return &Rotator{client: client, clock: clock, log: log.With("component", "Rotator")}
}

// Rotate renames the current General after its conversation and replaces it
// with a fresh topic. The returned state is only meaningful when err is nil;
// on error nothing was committed and the caller must keep its old state.
func (r *Rotator) Rotate(ctx context.Context, req RotationRequest) (RotationResult, error) {
	log := r.log.With("chat_id", req.Chat.ID, "topic_id", req.TopicID)

	renamed := true
	if err := r.client.RenameTopic(ctx, req.Chat.ID, req.TopicID, req.Subject); err != nil {
		if !errors.Is(err, domain.ErrTopicNotFound) && !errors.Is(err, domain.ErrTopicClosed) {
			return RotationResult{}, fmt.Errorf("rename topic %d: %w", req.TopicID, err)
		}
		renamed = false
		log.Warn("topic already gone, skipping rename", "error", err)
	}

	newID, err := r.client.CreateTopic(ctx, req.Chat.ID, req.Chat.Title())
	if err != nil {
		return RotationResult{}, fmt.Errorf("create replacement topic: %w", err)
	}

	welcomeID, welcomed := r.sendWelcome(ctx, req.Chat, newID, domain.WelcomeData{
		ChatName:        req.Chat.DisplayName(),
		PreviousSubject: req.Subject,
		PreviousTopicID: req.TopicID,
	})

	now := r.clock.Now().UTC()
	state := req.State.RecordRotation(domain.RotationRecord{
		TopicID:      req.TopicID,
		Subject:      req.Subject,
		NewGeneralID: newID,
		RotatedAt:    now,
	}, req.Marker)
	state.WelcomeMessageID = welcomeID

	log.Info("rotated general topic", "subject", req.Subject, "new_general_id", newID, "renamed", renamed)

	return RotationResult{State: state, NewGeneralID: newID, Renamed: renamed, WelcomeSent: welcomed}, nil
}

// Recreate creates a new General without touching the previous topic. It is
// the recovery path for a General that vanished or was closed externally.
func (r *Rotator) Recreate(ctx context.Context, chat domain.MonitoredChat, state domain.RotationState) (RotationResult, error) {
	newID, err := r.client.CreateTopic(ctx, chat.ID, chat.Title())
	if err != nil {
		return RotationResult{}, fmt.Errorf("create replacement topic: %w", err)
	}

	welcomeID, welcomed := r.sendWelcome(ctx, chat, newID, domain.WelcomeData{ChatName: chat.DisplayName()})
	r.log.Info("recreated general topic", "chat_id", chat.ID, "previous_topic_id", state.GeneralTopicID, "new_general_id", newID)

	next := state.ReplaceGeneral(newID, r.clock.Now().UTC())
	next.WelcomeMessageID = welcomeID

	return RotationResult{
		State:        next,
		NewGeneralID: newID,
		WelcomeSent:  welcomed,
	}, nil
}

// sendWelcome is cosmetic: failures are logged and never undo a rotation.
// The returned id is 0 when nothing was sent or the platform did not report it.
func (r *Rotator) sendWelcome(ctx context.Context, chat domain.MonitoredChat, topicID domain.TopicID, data domain.WelcomeData) (domain.MessageID, bool) {
	text, err := chat.RenderWelcome(data)
	if err != nil {
		r.log.Error("render welcome message", "chat_id", chat.ID, "error", err)
		return 0, false
	}

	id, err := r.client.SendMessage(ctx, chat.ID, topicID, text)
	if err != nil {
		r.log.Warn("send welcome message", "chat_id", chat.ID, "topic_id", topicID, "error", err)
		return 0, false
	}

	return id, true
}
