package toml

import "fmt"

const currentSchemaVersion = 1

// fileSchema mirrors config.toml. It is decoded strictly so a misspelled key
// fails loudly instead of silently falling back to a default.
type fileSchema struct {
	Version      int            `toml:"version"`
	Interval     string         `toml:"interval,omitempty"`
	CallDelay    string         `toml:"call_delay,omitempty"`
	SettleAfter  string         `toml:"settle_after,omitempty"`
	HistoryLimit int            `toml:"history_limit,omitempty"`
	StatePath    string         `toml:"state_path,omitempty"`
	Log          logSchema      `toml:"log,omitempty"`
	Telegram     telegramSchema `toml:"telegram,omitempty"`
	Chats        []chatSchema   `toml:"chats"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported config schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type logSchema struct {
	Mode string `toml:"mode,omitempty"`
}

type telegramSchema struct {
	APIID         int     `toml:"api_id,omitempty"`
	APIHashRef    string  `toml:"api_hash_ref,omitempty"`
	SessionPath   string  `toml:"session_path,omitempty"`
	ResponderIDs  []int64 `toml:"responder_ids,omitempty"`
	SelfAutomated bool    `toml:"self_automated,omitempty"`
}

type chatSchema struct {
	ID             int64   `toml:"id"`
	Name           string  `toml:"name,omitempty"`
	WelcomeMessage string  `toml:"welcome_message,omitempty"`
	ExemptTopics   []int64 `toml:"exempt_topics,omitempty"`
	GeneralTitle   string  `toml:"general_title,omitempty"`
}
