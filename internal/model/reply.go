package model

// ReplyKind tells the transport which kind of message was composed
type ReplyKind string

const (
	ReplyNextQuestion ReplyKind = "next_question"
	ReplyReprompt     ReplyKind = "reprompt"
	ReplySummary      ReplyKind = "summary"
	ReplySafety       ReplyKind = "safety"
	ReplyBooking      ReplyKind = "booking"
	ReplyFallback     ReplyKind = "fallback"
)

// EscalationTag is forwarded to the human-alerting collaborator
type EscalationTag struct {
	ReasonCode ReasonCode `json:"reasonCode"`
}

// Reply is everything a turn produces for the surrounding system
type Reply struct {
	Kind       ReplyKind         `json:"kind"`
	Text       string            `json:"text"`
	Score      *ScoreResult      `json:"score,omitempty"`
	Verdict    EscalationVerdict `json:"verdict"`
	Escalation *EscalationTag    `json:"escalation,omitempty"`
	Booking    *Booking          `json:"booking,omitempty"`
	Session    *ScreeningSession `json:"session"` // state to carry to the next turn
}
