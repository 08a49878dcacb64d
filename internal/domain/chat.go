package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type ChatID int64
type TopicID int64
type MessageID int64

const (
	// DefaultGeneralTopicID is the built-in General topic every forum
	// supergroup starts with.
	DefaultGeneralTopicID TopicID = 1
	DefaultGeneralTitle           = "General"

	supergroupIDOffset int64 = 1_000_000_000_000
)

func ParseChatID(raw string) (ChatID, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse chat id %q: %w", raw, err)
	}
	if value == 0 {
		return 0, fmt.Errorf("chat id is required")
	}

	return ChatID(value), nil
}

func (id ChatID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ChannelID converts a Bot API style supergroup id (-100xxxxxxxxxx) into the
// bare MTProto channel id. Positive ids are returned unchanged.
func (id ChatID) ChannelID() int64 {
	if id >= 0 {
		return int64(id)
	}

	bare := -int64(id) - supergroupIDOffset
	if bare <= 0 {
		return -int64(id)
	}

	return bare
}

type MonitoredChat struct {
	ID             ChatID
	Name           string
	WelcomeMessage string
	ExemptTopics   []TopicID
	GeneralTitle   string
}

func (c MonitoredChat) IsExempt(topicID TopicID) bool {
	for _, exempt := range c.ExemptTopics {
		if exempt == topicID {
			return true
		}
	}

	return false
}

func (c MonitoredChat) Title() string {
	if strings.TrimSpace(c.GeneralTitle) == "" {
		return DefaultGeneralTitle
	}

	return c.GeneralTitle
}

func (c MonitoredChat) DisplayName() string {
	if strings.TrimSpace(c.Name) == "" {
		return c.ID.String()
	}

	return c.Name
}
