package application

import "github.com/bnema/topicd/internal/domain"

type Outcome string

const (
	OutcomeRotated    Outcome = "rotated"
	OutcomeRecovered  Outcome = "recovered"
	OutcomeNotGeneral Outcome = "not_general"
	OutcomeNoAction   Outcome = "no_action"
)

type ChatResult struct {
	ChatID          domain.ChatID  `json:"chat_id"`
	Outcome         Outcome        `json:"outcome"`
	Verdict         Verdict        `json:"verdict,omitempty"`
	Reason          string         `json:"reason,omitempty"`
	GeneralTopicID  domain.TopicID `json:"general_topic_id"`
	PreviousTopicID domain.TopicID `json:"previous_topic_id,omitempty"`
	Subject         string         `json:"subject,omitempty"`
	Err             error          `json:"-"`
}

const (
	reasonMissing  = "general_missing"
	reasonClosed   = "general_closed"
	reasonExempt   = "general_exempt"
	reasonRotated  = "general_already_rotated"
	reasonAdopted  = "adopted_existing_general"
	reasonCreated  = "created_general"
	reasonSettling = "general_settling"
)
