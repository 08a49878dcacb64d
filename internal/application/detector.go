package application

import (
	"sort"

	"github.com/bnema/topicd/internal/domain"
)

type Verdict string

const (
	VerdictNoActivity    Verdict = "no_activity"
	VerdictAwaitingReply Verdict = "awaiting_reply"
	VerdictReadyToRotate Verdict = "ready_to_rotate"
)

// Detection is the outcome of evaluating one topic's recent history.
// Marker is the value last_processed_marker should hold afterwards.
type Detection struct {
	Verdict Verdict
	Subject string
	Marker  domain.MessageID
	// Human and Reply identify the exchange that resolved a ready verdict.
	Human domain.Message
	Reply domain.Message
}

// Detect decides whether messages contain a completed exchange newer than
// marker. Messages may arrive in any order; they are evaluated oldest first.
func Detect(messages []domain.Message, marker domain.MessageID, subjectOf func(humans []domain.Message, reply domain.Message) string) Detection {
	ordered := append([]domain.Message(nil), messages...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	latestHuman := -1
	highest := marker
	for i, msg := range ordered {
		if msg.ID <= marker {
			continue
		}
		if msg.ID > highest {
			highest = msg.ID
		}
		if msg.Kind == domain.SenderHuman && msg.HasContent() {
			latestHuman = i
		}
	}

	if latestHuman < 0 {
		return Detection{Verdict: VerdictNoActivity, Marker: highest}
	}

	human := ordered[latestHuman]
	replyIndex := -1
	for i := latestHuman + 1; i < len(ordered); i++ {
		if ordered[i].Kind == domain.SenderAutomated && ordered[i].ID > human.ID {
			replyIndex = i
		}
	}

	if replyIndex < 0 {
		return Detection{Verdict: VerdictAwaitingReply, Marker: marker}
	}

	reply := ordered[replyIndex]
	exchange := exchangeHumans(ordered[:latestHuman+1], marker)

	subject := ""
	if subjectOf != nil {
		subject = subjectOf(exchange, reply)
	}

	return Detection{
		Verdict: VerdictReadyToRotate,
		Subject: subject,
		Marker:  reply.ID,
		Human:   human,
		Reply:   reply,
	}
}

// exchangeHumans returns the human messages after marker that the reply
// resolves, newest first. An automated message between two human messages
// ends the earlier exchange.
func exchangeHumans(ordered []domain.Message, marker domain.MessageID) []domain.Message {
	var humans []domain.Message
	for i := len(ordered) - 1; i >= 0; i-- {
		msg := ordered[i]
		if msg.ID <= marker {
			break
		}
		if msg.Kind == domain.SenderAutomated {
			if len(humans) > 0 {
				break
			}
			continue
		}
		if msg.HasContent() {
			humans = append(humans, msg)
		}
	}

	return humans
}
