package domain

import "time"

// MaxRotationHistory bounds the per-chat list of already rotated topics.
const MaxRotationHistory = 20

type RotationRecord struct {
	TopicID      TopicID
	Subject      string
	NewGeneralID TopicID
	RotatedAt    time.Time
}

// RotationState is the persisted record of one chat. WelcomeMessageID is the
// welcome posted into the current General; it is neither a question nor an
// answer.
type RotationState struct {
	GeneralTopicID      TopicID
	LastProcessedMarker MessageID
	GeneralCreatedAt    time.Time
	LastRotatedAt       time.Time
	WelcomeMessageID    MessageID
	Rotations           []RotationRecord
}

// RotationStates maps each monitored chat to its persisted record.
type RotationStates map[ChatID]RotationState

// NewRotationState returns the implicit record of a chat that has never been
// processed: the built-in General topic and no marker.
func NewRotationState() RotationState {
	return RotationState{GeneralTopicID: DefaultGeneralTopicID}
}

func (s RotationStates) Get(chatID ChatID) RotationState {
	state, ok := s[chatID]
	if !ok {
		return NewRotationState()
	}
	if state.GeneralTopicID == 0 {
		state.GeneralTopicID = DefaultGeneralTopicID
	}

	return state
}

func (s RotationState) WasRotated(topicID TopicID) bool {
	for _, record := range s.Rotations {
		if record.TopicID == topicID {
			return true
		}
	}

	return false
}

// RecordRotation moves General to newGeneral and appends the history entry,
// keeping only the most recent MaxRotationHistory records.
func (s RotationState) RecordRotation(record RotationRecord, marker MessageID) RotationState {
	next := s.Clone()
	next.GeneralTopicID = record.NewGeneralID
	next.GeneralCreatedAt = record.RotatedAt
	next.LastRotatedAt = record.RotatedAt
	next.WelcomeMessageID = 0
	if marker > next.LastProcessedMarker {
		next.LastProcessedMarker = marker
	}

	next.Rotations = append(next.Rotations, record)
	if overflow := len(next.Rotations) - MaxRotationHistory; overflow > 0 {
		next.Rotations = append([]RotationRecord(nil), next.Rotations[overflow:]...)
	}

	return next
}

// ReplaceGeneral points the record at a recovered or adopted General topic.
// createdAt is zero when the topic was adopted rather than created.
func (s RotationState) ReplaceGeneral(topicID TopicID, createdAt time.Time) RotationState {
	next := s.Clone()
	next.GeneralTopicID = topicID
	next.GeneralCreatedAt = createdAt
	next.WelcomeMessageID = 0

	return next
}

func (s RotationState) Clone() RotationState {
	clone := s
	if s.Rotations != nil {
		clone.Rotations = append([]RotationRecord(nil), s.Rotations...)
	}

	return clone
}

func (s RotationState) Equal(other RotationState) bool {
	if s.GeneralTopicID != other.GeneralTopicID ||
		s.LastProcessedMarker != other.LastProcessedMarker ||
		!s.GeneralCreatedAt.Equal(other.GeneralCreatedAt) ||
		!s.LastRotatedAt.Equal(other.LastRotatedAt) ||
		s.WelcomeMessageID != other.WelcomeMessageID ||
		len(s.Rotations) != len(other.Rotations) {
		return false
	}

	for i := range s.Rotations {
		left, right := s.Rotations[i], other.Rotations[i]
		if left.TopicID != right.TopicID || left.Subject != right.Subject ||
			left.NewGeneralID != right.NewGeneralID || !left.RotatedAt.Equal(right.RotatedAt) {
			return false
		}
	}

	return true
}
