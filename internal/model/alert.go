package model

import "time"

// AlertStatus tracks counsellor follow-up on an escalation
type AlertStatus string

const (
	AlertOpen         AlertStatus = "open"
	AlertAcknowledged AlertStatus = "acknowledged"
)

// Alert is an escalation handed to the human-alerting side
type Alert struct {
	ID             string       `json:"id" bson:"_id"`
	SessionKey     string       `json:"sessionKey" bson:"sessionKey"`
	ReasonCode     ReasonCode   `json:"reasonCode" bson:"reasonCode"`
	Score          *ScoreResult `json:"score,omitempty" bson:"score,omitempty"`
	Sentiment      *float64     `json:"sentiment,omitempty" bson:"sentiment,omitempty"`
	Status         AlertStatus  `json:"status" bson:"status"`
	CreatedAt      time.Time    `json:"createdAt" bson:"createdAt"`
	AcknowledgedBy string       `json:"acknowledgedBy,omitempty" bson:"acknowledgedBy,omitempty"`
	AcknowledgedAt *time.Time   `json:"acknowledgedAt,omitempty" bson:"acknowledgedAt,omitempty"`
}
