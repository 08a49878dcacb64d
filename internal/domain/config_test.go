package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Interval:     DefaultInterval,
		CallDelay:    DefaultCallDelay,
		SettleAfter:  DefaultSettleAfter,
		HistoryLimit: DefaultHistoryLimit,
		StatePath:    "/var/lib/topicd/forum_state.json",
		Chats:        []MonitoredChat{{ID: -1003643461316, Name: "Helpdesk"}},
	}
}

func TestConfigValidateAcceptsDefaults(t *testing.T) {
	t.Parallel()

	require.NoError(t, validConfig().Validate())
}

func TestConfigValidateRequiresChats(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Chats = nil

	require.ErrorIs(t, cfg.Validate(), ErrNoMonitoredChats)
}

func TestConfigValidateReportsEveryProblem(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Interval = 0
	cfg.HistoryLimit = -1
	cfg.StatePath = " "
	cfg.Chats = append(cfg.Chats,
		MonitoredChat{ID: -1003643461316},
		MonitoredChat{ID: -1009, WelcomeMessage: "{{.ChatName"},
		MonitoredChat{ID: -1010, ExemptTopics: []TopicID{0}},
	)

	err := cfg.Validate()
	require.Error(t, err)
	for _, fragment := range []string{
		"interval must be positive",
		"history_limit must be positive",
		"state_path is required",
		"duplicate chat id -1003643461316",
		"parse welcome message template",
		"invalid exempt topic id 0",
	} {
		assert.Contains(t, err.Error(), fragment)
	}
}

func TestTelegramConfigValidate(t *testing.T) {
	t.Parallel()

	err := TelegramConfig{}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram.api_id is required")
	assert.Contains(t, err.Error(), "telegram.api_hash_ref is required")

	require.NoError(t, TelegramConfig{APIID: 12345, APIHashRef: "topicd/telegram/api_hash", SessionPath: "/tmp/session.json"}.Validate())
}

func TestConfigChatLookup(t *testing.T) {
	t.Parallel()

	chat, ok := validConfig().Chat(-1003643461316)
	require.True(t, ok)
	assert.Equal(t, "Helpdesk", chat.Name)

	_, ok = validConfig().Chat(-1)
	assert.False(t, ok)
}

func TestRenderWelcome(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		template string
		want     string
	}{
		{name: "default", template: "", want: DefaultWelcomeMessage},
		{name: "plain text", template: "Ask away!", want: "Ask away!"},
		{name: "placeholders", template: "{{.ChatName}}: previous was {{.PreviousSubject}} (#{{.PreviousTopicID}})", want: "Helpdesk: previous was VPN reset? (#1)"},
		{name: "renders empty", template: "{{if .PreviousSubject}}{{.PreviousSubject}}{{end}}", want: DefaultWelcomeMessage},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			chat := MonitoredChat{ID: -1003643461316, Name: "Helpdesk", WelcomeMessage: tc.template}
			data := WelcomeData{ChatName: chat.DisplayName(), PreviousSubject: "VPN reset?", PreviousTopicID: 1}
			if tc.name == "renders empty" {
				data.PreviousSubject = ""
			}

			got, err := chat.RenderWelcome(data)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRenderWelcomeRejectsUnknownField(t *testing.T) {
	t.Parallel()

	chat := MonitoredChat{ID: -1, WelcomeMessage: "{{.Missing}}"}

	_, err := chat.RenderWelcome(WelcomeData{})
	require.Error(t, err)
}
