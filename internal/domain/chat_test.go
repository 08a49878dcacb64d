package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChatID(t *testing.T) {
	t.Parallel()

	id, err := ParseChatID(" -1003643461316 ")
	require.NoError(t, err)
	assert.Equal(t, ChatID(-1003643461316), id)
	assert.Equal(t, "-1003643461316", id.String())

	_, err = ParseChatID("general")
	require.Error(t, err)
	_, err = ParseChatID("0")
	require.Error(t, err)
}

func TestChatIDChannelID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(3643461316), ChatID(-1003643461316).ChannelID())
	assert.Equal(t, int64(3643461316), ChatID(3643461316).ChannelID())
	assert.Equal(t, int64(4242), ChatID(-4242).ChannelID())
}

func TestMonitoredChatDefaults(t *testing.T) {
	t.Parallel()

	chat := MonitoredChat{ID: -1003643461316, ExemptTopics: []TopicID{3, 8}}

	assert.Equal(t, "General", chat.Title())
	assert.Equal(t, "-1003643461316", chat.DisplayName())
	assert.True(t, chat.IsExempt(8))
	assert.False(t, chat.IsExempt(1))

	chat.Name = "Helpdesk"
	chat.GeneralTitle = "Lobby"
	assert.Equal(t, "Lobby", chat.Title())
	assert.Equal(t, "Helpdesk", chat.DisplayName())
}

func TestMessageHasContent(t *testing.T) {
	t.Parallel()

	assert.True(t, Message{Text: "hi"}.HasContent())
	assert.True(t, Message{HasMedia: true}.HasContent())
	assert.False(t, Message{Text: "  \n"}.HasContent())
	assert.True(t, Topic{ID: 1}.Open())
	assert.False(t, Topic{ID: 1, Closed: true}.Open())
}
