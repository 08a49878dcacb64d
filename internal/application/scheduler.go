package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/topicd/internal/domain"
	"github.com/bnema/topicd/internal/platform/logger"
	"github.com/bnema/topicd/internal/ports"
)

type SchedulerOptions struct {
	CallDelay    time.Duration
	SettleAfter  time.Duration
	HistoryLimit int
}

type Scheduler struct {
	chats   []domain.MonitoredChat
	opts    SchedulerOptions
	client  ports.ChatClient
	states  ports.StateRepository
	rotator *Rotator
	clock   ports.Clock
	log     *logger.Logger
	sleep   func(ctx context.Context, d time.Duration) error
}

func NewScheduler(cfg domain.Config, client ports.ChatClient, states ports.StateRepository, clock ports.Clock, log *logger.Logger) *Scheduler {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = logger.NewNop()
	}

	opts := SchedulerOptions{
		CallDelay:    cfg.CallDelay,
		SettleAfter:  cfg.SettleAfter,
		HistoryLimit: cfg.HistoryLimit,
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = domain.DefaultHistoryLimit
	}

	return &Scheduler{
		chats:   cfg.Chats,
		opts:    opts,
		client:  client,
		states:  states,
		rotator: NewRotator(client, clock, log),
		clock:   clock,
		log:     log.With("component", "Scheduler"),
		sleep:   sleepContext,
	}
}

// Run ticks until ctx is cancelled. Cancellation is a clean shutdown.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", interval)
	}

	s.log.Info("polling started", "interval", interval.String(), "chats", len(s.chats))
	for {
		s.Tick(ctx)

		if err := s.sleep(ctx, interval); err != nil {
			s.log.Info("polling stopped")
			return nil
		}
	}
}

// Tick processes every monitored chat once, in order. A failing chat is
// logged and never prevents the remaining chats from being processed.
func (s *Scheduler) Tick(ctx context.Context) []ChatResult {
	results := make([]ChatResult, 0, len(s.chats))
	for i, chat := range s.chats {
		if i > 0 {
			if err := s.sleep(ctx, s.opts.CallDelay); err != nil {
				break
			}
		}
		if ctx.Err() != nil {
			break
		}

		result, err := s.ProcessChat(ctx, chat)
		if err != nil {
			result.Err = err
			s.log.Error("chat processing failed", "chat_id", chat.ID, "chat", chat.DisplayName(), "error", err)
		} else if result.Outcome != OutcomeNoAction {
			s.log.Info("chat processed", "chat_id", chat.ID, "outcome", result.Outcome, "general_topic_id", result.GeneralTopicID, "reason", result.Reason)
		}
		results = append(results, result)
	}

	return results
}

// CheckChat runs one read/decide/act pass for a single monitored chat.
func (s *Scheduler) CheckChat(ctx context.Context, chatID domain.ChatID) (ChatResult, error) {
	chat, ok := s.chat(chatID)
	if !ok {
		return ChatResult{ChatID: chatID}, fmt.Errorf("%w: %s", domain.ErrChatNotMonitored, chatID)
	}

	return s.ProcessChat(ctx, chat)
}

// ProcessChat is the per-chat state machine: Ensure-General, Evaluate, Act.
func (s *Scheduler) ProcessChat(ctx context.Context, chat domain.MonitoredChat) (ChatResult, error) {
	states := s.loadStates(ctx)
	current := states.Get(chat.ID)
	result := ChatResult{ChatID: chat.ID, Outcome: OutcomeNoAction, GeneralTopicID: current.GeneralTopicID}

	if handled, err := s.ensureGeneral(ctx, states, chat, current, &result); err != nil || handled {
		return result, err
	}

	if s.settling(current) {
		result.Reason = reasonSettling
		return result, nil
	}

	messages, err := s.client.RecentMessages(ctx, chat.ID, current.GeneralTopicID, s.opts.HistoryLimit)
	if err != nil {
		return result, fmt.Errorf("fetch recent messages of topic %d: %w", current.GeneralTopicID, err)
	}

	messages = withoutMessage(messages, current.WelcomeMessageID)

	now := s.clock.Now()
	detection := Detect(messages, current.LastProcessedMarker, func(humans []domain.Message, reply domain.Message) string {
		return DeriveSubject(humans, reply, now)
	})
	result.Verdict = detection.Verdict

	if detection.Verdict != VerdictReadyToRotate {
		if detection.Marker != current.LastProcessedMarker {
			next := current.Clone()
			next.LastProcessedMarker = detection.Marker
			if err := s.persist(ctx, states, chat.ID, next); err != nil {
				return result, err
			}
		}
		return result, nil
	}

	rotated, err := s.rotator.Rotate(ctx, RotationRequest{
		Chat:    chat,
		State:   current,
		TopicID: current.GeneralTopicID,
		Subject: detection.Subject,
		Marker:  detection.Marker,
	})
	if err != nil {
		return result, fmt.Errorf("rotate topic %d: %w", current.GeneralTopicID, err)
	}

	if err := s.persist(ctx, states, chat.ID, rotated.State); err != nil {
		return result, err
	}

	result.Outcome = OutcomeRotated
	result.PreviousTopicID = current.GeneralTopicID
	result.GeneralTopicID = rotated.NewGeneralID
	result.Subject = detection.Subject

	return result, nil
}

// RotateNow rotates the chat's current General to subject regardless of
// activity. A missing General is recovered instead.
func (s *Scheduler) RotateNow(ctx context.Context, chatID domain.ChatID, subject string) (ChatResult, error) {
	chat, ok := s.chat(chatID)
	if !ok {
		return ChatResult{ChatID: chatID}, fmt.Errorf("%w: %s", domain.ErrChatNotMonitored, chatID)
	}

	states := s.loadStates(ctx)
	current := states.Get(chat.ID)
	result := ChatResult{ChatID: chat.ID, Outcome: OutcomeNoAction, GeneralTopicID: current.GeneralTopicID}

	if handled, err := s.ensureGeneral(ctx, states, chat, current, &result); err != nil || handled {
		return result, err
	}

	subject = SanitizeSubject(subject, s.clock.Now())
	rotated, err := s.rotator.Rotate(ctx, RotationRequest{
		Chat:    chat,
		State:   current,
		TopicID: current.GeneralTopicID,
		Subject: subject,
		Marker:  current.LastProcessedMarker,
	})
	if err != nil {
		return result, fmt.Errorf("rotate topic %d: %w", current.GeneralTopicID, err)
	}

	if err := s.persist(ctx, states, chat.ID, rotated.State); err != nil {
		return result, err
	}

	result.Outcome = OutcomeRotated
	result.PreviousTopicID = current.GeneralTopicID
	result.GeneralTopicID = rotated.NewGeneralID
	result.Subject = subject

	return result, nil
}

// ensureGeneral verifies the tracked General and repairs it when it is
// unusable. handled reports that the tick for this chat ends here; result is
// filled in accordingly.
func (s *Scheduler) ensureGeneral(ctx context.Context, states domain.RotationStates, chat domain.MonitoredChat, current domain.RotationState, result *ChatResult) (bool, error) {
	repaired, err := s.repairGeneral(ctx, chat, current)
	if err != nil || repaired.outcome == "" {
		return false, err
	}

	result.Outcome = repaired.outcome
	result.Reason = repaired.reason
	result.PreviousTopicID = current.GeneralTopicID
	result.GeneralTopicID = repaired.state.GeneralTopicID

	if repaired.outcome == OutcomeRecovered {
		if err := s.persist(ctx, states, chat.ID, repaired.state); err != nil {
			return true, err
		}
	}

	return true, nil
}

type repairResult struct {
	outcome Outcome
	reason  string
	state   domain.RotationState
}

// repairGeneral returns an empty outcome when the tracked topic is usable.
func (s *Scheduler) repairGeneral(ctx context.Context, chat domain.MonitoredChat, current domain.RotationState) (repairResult, error) {
	tracked := current.GeneralTopicID

	topic, err := s.client.Topic(ctx, chat.ID, tracked)
	if err != nil && !errors.Is(err, domain.ErrTopicNotFound) {
		return repairResult{}, fmt.Errorf("look up general topic %d: %w", tracked, err)
	}

	var reason string
	switch {
	case err != nil:
		reason = reasonMissing
	case topic.Closed:
		reason = reasonClosed
	case chat.IsExempt(tracked):
		reason = reasonExempt
	case current.WasRotated(tracked):
		reason = reasonRotated
	default:
		return repairResult{}, nil
	}

	s.log.Warn("general topic unusable", "chat_id", chat.ID, "topic_id", tracked, "reason", reason)

	if adopted, ok, err := s.findOpenGeneral(ctx, chat, current); err != nil {
		return repairResult{}, err
	} else if ok {
		s.log.Info("adopting existing general topic", "chat_id", chat.ID, "topic_id", adopted.ID)
		return repairResult{
			outcome: OutcomeRecovered,
			reason:  reasonAdopted,
			state:   current.ReplaceGeneral(adopted.ID, time.Time{}),
		}, nil
	}

	if reason == reasonExempt {
		return repairResult{outcome: OutcomeNotGeneral, reason: reason, state: current}, nil
	}

	recreated, err := s.rotator.Recreate(ctx, chat, current)
	if err != nil {
		return repairResult{}, err
	}

	return repairResult{outcome: OutcomeRecovered, reason: reasonCreated, state: recreated.State}, nil
}

// findOpenGeneral returns the newest open topic carrying the General title
// that is neither exempt, already rotated, nor the tracked topic.
func (s *Scheduler) findOpenGeneral(ctx context.Context, chat domain.MonitoredChat, current domain.RotationState) (domain.Topic, bool, error) {
	topics, err := s.client.ListTopics(ctx, chat.ID)
	if err != nil {
		return domain.Topic{}, false, fmt.Errorf("list topics: %w", err)
	}

	var best domain.Topic
	found := false
	for _, topic := range topics {
		if topic.Closed || topic.Title != chat.Title() || topic.ID == current.GeneralTopicID {
			continue
		}
		if chat.IsExempt(topic.ID) || current.WasRotated(topic.ID) {
			continue
		}
		if !found || topic.ID > best.ID {
			best = topic
			found = true
		}
	}

	return best, found, nil
}

func (s *Scheduler) settling(state domain.RotationState) bool {
	if state.GeneralCreatedAt.IsZero() || s.opts.SettleAfter <= 0 {
		return false
	}

	return s.clock.Now().Sub(state.GeneralCreatedAt) < s.opts.SettleAfter
}

func (s *Scheduler) loadStates(ctx context.Context) domain.RotationStates {
	states, err := s.states.Load(ctx)
	if err != nil {
		s.log.Warn("rotation state unreadable, using defaults", "error", err)
	}
	if states == nil {
		states = domain.RotationStates{}
	}

	return states
}

func (s *Scheduler) persist(ctx context.Context, states domain.RotationStates, chatID domain.ChatID, next domain.RotationState) error {
	states[chatID] = next
	if err := s.states.Save(ctx, states); err != nil {
		return fmt.Errorf("save rotation state: %w", err)
	}

	return nil
}

func (s *Scheduler) chat(id domain.ChatID) (domain.MonitoredChat, bool) {
	for _, chat := range s.chats {
		if chat.ID == id {
			return chat, true
		}
	}

	return domain.MonitoredChat{}, false
}

// withoutMessage drops the welcome topicd posted itself so it is never taken
// for a question or for the reply to one.
func withoutMessage(messages []domain.Message, id domain.MessageID) []domain.Message {
	if id <= 0 {
		return messages
	}

	kept := make([]domain.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.ID != id {
			kept = append(kept, msg)
		}
	}

	return kept
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
