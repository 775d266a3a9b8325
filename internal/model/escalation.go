package model

// ReasonCode explains why a turn escalated
type ReasonCode string

const (
	ReasonNone              ReasonCode = "none"
	ReasonCrisisIntent      ReasonCode = "crisis_intent"
	ReasonHighSentimentRisk ReasonCode = "high_sentiment_risk"
	ReasonScoreSevere       ReasonCode = "score_severe"
	ReasonFlaggedItem       ReasonCode = "flagged_item"
)

// EscalationVerdict is the single escalate/no-escalate outcome of a turn
type EscalationVerdict struct {
	Escalate   bool       `json:"escalate"`
	ReasonCode ReasonCode `json:"reasonCode"`
}
