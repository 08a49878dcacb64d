package domain

import (
	"strings"
	"time"
)

type SenderKind string

const (
	SenderHuman     SenderKind = "human"
	SenderAutomated SenderKind = "automated"
)

type Message struct {
	ID       MessageID
	Kind     SenderKind
	SenderID int64
	Text     string
	HasMedia bool
	SentAt   time.Time
}

// HasContent reports whether the message carries text or media. Service
// messages and empty stubs do not count as conversation.
func (m Message) HasContent() bool {
	return strings.TrimSpace(m.Text) != "" || m.HasMedia
}

type Topic struct {
	ID     TopicID
	Title  string
	Closed bool
}

func (t Topic) Open() bool {
	return !t.Closed
}
