package service

// Broadcaster pushes events to connected counsellors (avoids import cycle with ws)
type Broadcaster interface {
	BroadcastToCounsellors(msgType string, payload interface{})
}

// Alert event types
const (
	EventEscalationAlert   = "escalation_alert"
	EventAlertAcknowledged = "alert_acknowledged"
)
