package domain

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"
)

const (
	DefaultInterval       = 30 * time.Second
	DefaultCallDelay      = time.Second
	DefaultSettleAfter    = 15 * time.Second
	DefaultHistoryLimit   = 20
	DefaultWelcomeMessage = "👋 What's on your mind?"
	DefaultLogMode        = "dev"
)

type Config struct {
	Interval     time.Duration
	CallDelay    time.Duration
	SettleAfter  time.Duration
	HistoryLimit int
	StatePath    string
	LogMode      string
	Telegram     TelegramConfig
	Chats        []MonitoredChat
}

type TelegramConfig struct {
	APIID         int
	APIHashRef    string
	SessionPath   string
	ResponderIDs  []int64
	SelfAutomated bool
}

func (c Config) Chat(id ChatID) (MonitoredChat, bool) {
	for _, chat := range c.Chats {
		if chat.ID == id {
			return chat, true
		}
	}

	return MonitoredChat{}, false
}

// Validate reports every structural problem at once so a broken config file
// can be fixed in a single pass.
func (c Config) Validate() error {
	var errs []error

	if len(c.Chats) == 0 {
		errs = append(errs, ErrNoMonitoredChats)
	}
	if c.Interval <= 0 {
		errs = append(errs, fmt.Errorf("interval must be positive, got %s", c.Interval))
	}
	if c.CallDelay < 0 {
		errs = append(errs, fmt.Errorf("call_delay must not be negative, got %s", c.CallDelay))
	}
	if c.SettleAfter < 0 {
		errs = append(errs, fmt.Errorf("settle_after must not be negative, got %s", c.SettleAfter))
	}
	if c.HistoryLimit <= 0 {
		errs = append(errs, fmt.Errorf("history_limit must be positive, got %d", c.HistoryLimit))
	}
	if strings.TrimSpace(c.StatePath) == "" {
		errs = append(errs, errors.New("state_path is required"))
	}

	seen := make(map[ChatID]struct{}, len(c.Chats))
	for i, chat := range c.Chats {
		if err := chat.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("chats[%d]: %w", i, err))
			continue
		}
		if _, ok := seen[chat.ID]; ok {
			errs = append(errs, fmt.Errorf("chats[%d]: duplicate chat id %s", i, chat.ID))
		}
		seen[chat.ID] = struct{}{}
	}

	return errors.Join(errs...)
}

func (c TelegramConfig) Validate() error {
	var errs []error
	if c.APIID <= 0 {
		errs = append(errs, errors.New("telegram.api_id is required"))
	}
	if strings.TrimSpace(c.APIHashRef) == "" {
		errs = append(errs, errors.New("telegram.api_hash_ref is required"))
	}
	if strings.TrimSpace(c.SessionPath) == "" {
		errs = append(errs, errors.New("telegram.session_path is required"))
	}

	return errors.Join(errs...)
}

func (c MonitoredChat) Validate() error {
	if c.ID == 0 {
		return errors.New("id is required")
	}
	if _, err := ParseWelcomeTemplate(c.WelcomeMessage); err != nil {
		return fmt.Errorf("chat %s: %w", c.ID, err)
	}
	for _, topicID := range c.ExemptTopics {
		if topicID <= 0 {
			return fmt.Errorf("chat %s: invalid exempt topic id %d", c.ID, topicID)
		}
	}

	return nil
}

// WelcomeData is the data available to welcome message templates.
type WelcomeData struct {
	ChatName        string
	PreviousSubject string
	PreviousTopicID TopicID
}

func ParseWelcomeTemplate(raw string) (*template.Template, error) {
	if strings.TrimSpace(raw) == "" {
		raw = DefaultWelcomeMessage
	}

	tmpl, err := template.New("welcome").Option("missingkey=error").Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse welcome message template: %w", err)
	}

	return tmpl, nil
}

func (c MonitoredChat) RenderWelcome(data WelcomeData) (string, error) {
	tmpl, err := ParseWelcomeTemplate(c.WelcomeMessage)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("render welcome message: %w", err)
	}

	text := strings.TrimSpace(out.String())
	if text == "" {
		return DefaultWelcomeMessage, nil
	}

	return text, nil
}
