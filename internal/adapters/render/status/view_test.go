package status

import (
	"testing"
	"time"

	"github.com/bnema/topicd/internal/application"
	"github.com/bnema/topicd/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var renderNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestRenderChatWithRotations(t *testing.T) {
	output, err := Render([]application.ChatStatus{
		{
			ChatID:              -1003643461316,
			Name:                "Helpdesk",
			GeneralTopicID:      42,
			LastProcessedMarker: 611,
			GeneralCreatedAt:    renderNow.Add(-2 * time.Hour),
			ExemptTopics:        []domain.TopicID{1, 7},
			Tracked:             true,
			Rotations: []application.RotationSummary{
				{TopicID: 30, Subject: "VPN reset?", NewGeneralID: 42, RotatedAt: renderNow.Add(-2 * time.Hour)},
				{TopicID: 12, Subject: "Budget for Q3?", NewGeneralID: 30, RotatedAt: renderNow.Add(-50 * time.Hour)},
			},
		},
	}, RenderOptions{Now: renderNow, SettleAfter: 15 * time.Second})

	require.NoError(t, err)
	assert.Contains(t, output, "Forum Topic Rotation")
	assert.Contains(t, output, "chats: 1")
	assert.Contains(t, output, "Helpdesk (-1003643461316)")
	assert.Contains(t, output, "topic 42")
	assert.Contains(t, output, "message 611")
	assert.Contains(t, output, "1, 7")
	assert.Contains(t, output, "rotations (2):")
	assert.Contains(t, output, `"VPN reset?"`)
	assert.Contains(t, output, "#30 → #42")
	assert.Contains(t, output, "(2 hours ago)")
	assert.Contains(t, output, "(2 days ago)")
	assert.NotContains(t, output, "settling")
	assert.NotContains(t, output, "not processed yet")
}

func TestRenderUntrackedSettlingChat(t *testing.T) {
	output, err := Render([]application.ChatStatus{
		{ChatID: -1001111111111, Name: "-1001111111111", GeneralTopicID: 1},
		{ChatID: -1002222222222, Name: "Lobby", GeneralTopicID: 5, Tracked: true, GeneralCreatedAt: renderNow.Add(-5 * time.Second)},
	}, RenderOptions{Now: renderNow, SettleAfter: 15 * time.Second})

	require.NoError(t, err)
	assert.Contains(t, output, "chats: 2")
	assert.Contains(t, output, "not processed yet")
	assert.NotContains(t, output, "-1001111111111 (-1001111111111)")
	assert.Contains(t, output, "marker: none")
	assert.Contains(t, output, "rotations: none")
	assert.Contains(t, output, "[settling]")
}

func TestRenderTruncatesRotationHistory(t *testing.T) {
	rotations := make([]application.RotationSummary, 5)
	for i := range rotations {
		rotations[i] = application.RotationSummary{TopicID: domain.TopicID(i + 1), Subject: "Subject", NewGeneralID: domain.TopicID(i + 2), RotatedAt: renderNow}
	}

	output, err := Render([]application.ChatStatus{
		{ChatID: -1003643461316, Name: "Helpdesk", GeneralTopicID: 6, Tracked: true, Rotations: rotations},
	}, RenderOptions{Now: renderNow, MaxRotations: 2})

	require.NoError(t, err)
	assert.Contains(t, output, "… 3 more")
	assert.Contains(t, output, "just now")
}

func TestRenderEmptyStatuses(t *testing.T) {
	output, err := Render(nil, RenderOptions{Now: renderNow})

	require.NoError(t, err)
	assert.Contains(t, output, "No monitored chats configured.")
}

func TestFormatAgo(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unknown", formatAgo(time.Time{}, renderNow))
	assert.Equal(t, "just now", formatAgo(renderNow.Add(-30*time.Second), renderNow))
	assert.Equal(t, "1 minute ago", formatAgo(renderNow.Add(-time.Minute), renderNow))
	assert.Equal(t, "5 hours ago", formatAgo(renderNow.Add(-5*time.Hour), renderNow))
	assert.Equal(t, "1 day ago", formatAgo(renderNow.Add(-30*time.Hour), renderNow))
	assert.Equal(t, "2026-03-01T12:00:00Z", formatAgo(renderNow, time.Time{}))
}

func TestInterpolateColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "240", string(interpolateColor(0, 0, 100)))
	assert.Equal(t, "255", string(interpolateColor(100, 0, 100)))
	assert.Equal(t, "255", string(interpolateColor(5, 5, 5)))
}
