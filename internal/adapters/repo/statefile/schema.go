package statefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/topicd/internal/domain"
)

// Keys written by this package. Anything else found in a chat record is
// carried over untouched on save.
const (
	keyGeneralTopicID      = "general_topic_id"
	keyLastProcessedMarker = "last_processed_marker"
	keyGeneralCreatedAt    = "general_created_at"
	keyLastRotatedAt       = "last_rotated_at"
	keyWelcomeMessageID    = "welcome_message_id"
	keyRotations           = "rotations"
)

type chatStateSchema struct {
	GeneralTopicID      int64            `json:"general_topic_id"`
	LastProcessedMarker *int64           `json:"last_processed_marker"`
	GeneralCreatedAt    string           `json:"general_created_at,omitempty"`
	LastRotatedAt       string           `json:"last_rotated_at,omitempty"`
	WelcomeMessageID    int64            `json:"welcome_message_id,omitempty"`
	Rotations           []rotationSchema `json:"rotations,omitempty"`
}

type rotationSchema struct {
	TopicID      int64  `json:"topic_id"`
	Subject      string `json:"subject"`
	NewGeneralID int64  `json:"new_general_id"`
	RotatedAt    string `json:"rotated_at"`
}

func toSchema(state domain.RotationState) chatStateSchema {
	schema := chatStateSchema{
		GeneralTopicID:   int64(state.GeneralTopicID),
		GeneralCreatedAt: formatTime(state.GeneralCreatedAt),
		LastRotatedAt:    formatTime(state.LastRotatedAt),
		WelcomeMessageID: int64(state.WelcomeMessageID),
	}
	if schema.GeneralTopicID == 0 {
		schema.GeneralTopicID = int64(domain.DefaultGeneralTopicID)
	}
	if state.LastProcessedMarker > 0 {
		marker := int64(state.LastProcessedMarker)
		schema.LastProcessedMarker = &marker
	}
	for _, record := range state.Rotations {
		schema.Rotations = append(schema.Rotations, rotationSchema{
			TopicID:      int64(record.TopicID),
			Subject:      record.Subject,
			NewGeneralID: int64(record.NewGeneralID),
			RotatedAt:    formatTime(record.RotatedAt),
		})
	}

	return schema
}

func fromSchema(schema chatStateSchema) domain.RotationState {
	state := domain.RotationState{
		GeneralTopicID:   domain.TopicID(schema.GeneralTopicID),
		GeneralCreatedAt: parseTime(schema.GeneralCreatedAt),
		LastRotatedAt:    parseTime(schema.LastRotatedAt),
	}
	if schema.WelcomeMessageID > 0 {
		state.WelcomeMessageID = domain.MessageID(schema.WelcomeMessageID)
	}
	if state.GeneralTopicID <= 0 {
		state.GeneralTopicID = domain.DefaultGeneralTopicID
	}
	if schema.LastProcessedMarker != nil && *schema.LastProcessedMarker > 0 {
		state.LastProcessedMarker = domain.MessageID(*schema.LastProcessedMarker)
	}
	for _, record := range schema.Rotations {
		state.Rotations = append(state.Rotations, domain.RotationRecord{
			TopicID:      domain.TopicID(record.TopicID),
			Subject:      record.Subject,
			NewGeneralID: domain.TopicID(record.NewGeneralID),
			RotatedAt:    parseTime(record.RotatedAt),
		})
	}

	return state
}

// decodeRecord salvages what it can from one chat record: a field of the wrong
// type falls back to its default and a malformed rotation entry is dropped.
// The returned error lists everything that was discarded.
func decodeRecord(raw json.RawMessage) (chatStateSchema, error) {
	var schema chatStateSchema

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return schema, fmt.Errorf("record: %w", err)
	}

	var errs []error
	field := func(key string, target any) {
		value, ok := fields[key]
		if !ok {
			return
		}
		if err := json.Unmarshal(value, target); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}

	var generalTopicID int64
	field(keyGeneralTopicID, &generalTopicID)
	schema.GeneralTopicID = generalTopicID

	var marker *int64
	field(keyLastProcessedMarker, &marker)
	schema.LastProcessedMarker = marker

	var createdAt, rotatedAt string
	field(keyGeneralCreatedAt, &createdAt)
	field(keyLastRotatedAt, &rotatedAt)
	schema.GeneralCreatedAt = createdAt
	schema.LastRotatedAt = rotatedAt

	var welcomeID int64
	field(keyWelcomeMessageID, &welcomeID)
	schema.WelcomeMessageID = welcomeID

	var rotations []json.RawMessage
	field(keyRotations, &rotations)
	for i, entry := range rotations {
		var record rotationSchema
		if err := json.Unmarshal(entry, &record); err != nil {
			errs = append(errs, fmt.Errorf("%s[%d]: %w", keyRotations, i, err))
			continue
		}
		schema.Rotations = append(schema.Rotations, record)
	}

	return schema, errors.Join(errs...)
}

// mergeInto overlays the known fields of schema onto a raw record, keeping
// fields written by newer versions or by hand.
func mergeInto(raw map[string]json.RawMessage, schema chatStateSchema) (map[string]json.RawMessage, error) {
	if raw == nil {
		raw = map[string]json.RawMessage{}
	}

	set := func(key string, value any, omit bool) error {
		if omit {
			delete(raw, key)
			return nil
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}
		raw[key] = encoded
		return nil
	}

	if err := set(keyGeneralTopicID, schema.GeneralTopicID, false); err != nil {
		return nil, err
	}
	if err := set(keyLastProcessedMarker, schema.LastProcessedMarker, false); err != nil {
		return nil, err
	}
	if err := set(keyGeneralCreatedAt, schema.GeneralCreatedAt, schema.GeneralCreatedAt == ""); err != nil {
		return nil, err
	}
	if err := set(keyLastRotatedAt, schema.LastRotatedAt, schema.LastRotatedAt == ""); err != nil {
		return nil, err
	}
	if err := set(keyWelcomeMessageID, schema.WelcomeMessageID, schema.WelcomeMessageID == 0); err != nil {
		return nil, err
	}
	if err := set(keyRotations, schema.Rotations, len(schema.Rotations) == 0); err != nil {
		return nil, err
	}

	return raw, nil
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed.UTC()
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339Nano)
}
