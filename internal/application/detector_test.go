package application

import (
	"testing"

	"github.com/bnema/topicd/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func human(id domain.MessageID, text string) domain.Message {
	return domain.Message{ID: id, Kind: domain.SenderHuman, SenderID: 1001, Text: text}
}

func bot(id domain.MessageID, text string) domain.Message {
	return domain.Message{ID: id, Kind: domain.SenderAutomated, SenderID: 2002, Text: text}
}

func firstHumanText(humans []domain.Message, _ domain.Message) string {
	if len(humans) == 0 {
		return ""
	}
	return humans[0].Text
}

func TestDetectReadyWhenHumanMessageIsAnswered(t *testing.T) {
	t.Parallel()

	detection := Detect([]domain.Message{human(10, "How do I reset the VPN?"), bot(11, "Run vpn reset.")}, 0, firstHumanText)

	assert.Equal(t, VerdictReadyToRotate, detection.Verdict)
	assert.Equal(t, "How do I reset the VPN?", detection.Subject)
	assert.Equal(t, domain.MessageID(11), detection.Marker)
	assert.Equal(t, domain.MessageID(10), detection.Human.ID)
	assert.Equal(t, domain.MessageID(11), detection.Reply.ID)
}

func TestDetectAwaitingReplyKeepsMarker(t *testing.T) {
	t.Parallel()

	detection := Detect([]domain.Message{bot(4, "welcome"), human(5, "anyone around?")}, 4, firstHumanText)

	assert.Equal(t, VerdictAwaitingReply, detection.Verdict)
	assert.Equal(t, domain.MessageID(4), detection.Marker)
	assert.Empty(t, detection.Subject)
}

func TestDetectNoActivityAdvancesMarkerToHighestSeen(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		messages []domain.Message
		marker   domain.MessageID
		want     domain.MessageID
	}{
		{name: "empty topic", marker: 7, want: 7},
		{name: "only automated messages", messages: []domain.Message{bot(8, "hello"), bot(9, "still here")}, marker: 7, want: 9},
		{name: "everything already processed", messages: []domain.Message{human(3, "old"), bot(4, "old reply")}, marker: 4, want: 4},
		{name: "human message without content", messages: []domain.Message{{ID: 12, Kind: domain.SenderHuman}}, marker: 7, want: 12},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			detection := Detect(tc.messages, tc.marker, firstHumanText)

			assert.Equal(t, VerdictNoActivity, detection.Verdict)
			assert.Equal(t, tc.want, detection.Marker)
		})
	}
}

func TestDetectMediaOnlyHumanMessageCounts(t *testing.T) {
	t.Parallel()

	photo := domain.Message{ID: 20, Kind: domain.SenderHuman, HasMedia: true}
	detection := Detect([]domain.Message{photo, bot(21, "Nice photo")}, 0, nil)

	assert.Equal(t, VerdictReadyToRotate, detection.Verdict)
	assert.Equal(t, domain.MessageID(21), detection.Marker)
}

func TestDetectSortsMessagesByID(t *testing.T) {
	t.Parallel()

	detection := Detect([]domain.Message{bot(31, "answer"), human(30, "question?")}, 0, firstHumanText)

	assert.Equal(t, VerdictReadyToRotate, detection.Verdict)
	assert.Equal(t, domain.MessageID(31), detection.Marker)
}

func TestDetectNewerUnansweredHumanWins(t *testing.T) {
	t.Parallel()

	messages := []domain.Message{human(40, "first?"), bot(41, "first answer"), human(42, "second?")}
	detection := Detect(messages, 0, firstHumanText)

	assert.Equal(t, VerdictAwaitingReply, detection.Verdict)
	assert.Equal(t, domain.MessageID(0), detection.Marker)
}

func TestDetectUsesLatestReplyAfterHuman(t *testing.T) {
	t.Parallel()

	messages := []domain.Message{human(50, "question"), bot(51, "thinking"), bot(52, "final answer")}
	detection := Detect(messages, 0, firstHumanText)

	assert.Equal(t, VerdictReadyToRotate, detection.Verdict)
	assert.Equal(t, domain.MessageID(52), detection.Reply.ID)
	assert.Equal(t, domain.MessageID(52), detection.Marker)
}

func TestDetectIgnoresExchangesAtOrBelowMarker(t *testing.T) {
	t.Parallel()

	messages := []domain.Message{human(60, "handled"), bot(61, "done")}
	detection := Detect(messages, 61, firstHumanText)

	assert.Equal(t, VerdictNoActivity, detection.Verdict)
	assert.Equal(t, domain.MessageID(61), detection.Marker)
}

func TestDetectPassesExchangeHumansNewestFirst(t *testing.T) {
	t.Parallel()

	var got []domain.Message
	messages := []domain.Message{
		human(70, "older exchange"),
		bot(71, "older reply"),
		human(72, "context line"),
		human(73, "actual question?"),
		bot(74, "reply"),
	}

	detection := Detect(messages, 0, func(humans []domain.Message, reply domain.Message) string {
		got = humans
		assert.Equal(t, domain.MessageID(74), reply.ID)
		return "subject"
	})

	require.Equal(t, VerdictReadyToRotate, detection.Verdict)
	require.Len(t, got, 2)
	assert.Equal(t, domain.MessageID(73), got[0].ID)
	assert.Equal(t, domain.MessageID(72), got[1].ID)
}

func TestDetectDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	messages := []domain.Message{bot(81, "answer"), human(80, "question")}
	_ = Detect(messages, 0, nil)

	assert.Equal(t, domain.MessageID(81), messages[0].ID)
	assert.Equal(t, domain.MessageID(80), messages[1].ID)
}
