package model

import "time"

// SessionState is the state machine position of a screening session
type SessionState string

const (
	SessionIdle       SessionState = "idle"
	SessionInProgress SessionState = "in_progress"
	SessionComplete   SessionState = "complete"
)

// ScreeningSession tracks the questionnaire in flight for one conversation
type ScreeningSession struct {
	Key        string     `json:"key"`
	Instrument Instrument `json:"instrument,omitempty"`
	Answers    []int      `json:"answers,omitempty"`
	StartedAt  *time.Time `json:"startedAt,omitempty"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// NewSession returns an idle session for key
func NewSession(key string) *ScreeningSession {
	return &ScreeningSession{Key: key}
}

// State derives the state machine position from the stored fields
func (s *ScreeningSession) State() SessionState {
	if !s.Instrument.Valid() {
		return SessionIdle
	}
	if len(s.Answers) >= s.Instrument.QuestionCount() {
		return SessionComplete
	}
	return SessionInProgress
}

// Count returns the number of answers collected so far
func (s *ScreeningSession) Count() int {
	return len(s.Answers)
}

// Clone returns a deep copy so callers never share the answers backing array
func (s *ScreeningSession) Clone() *ScreeningSession {
	if s == nil {
		return nil
	}
	c := *s
	if s.Answers != nil {
		c.Answers = append([]int(nil), s.Answers...)
	}
	if s.StartedAt != nil {
		t := *s.StartedAt
		c.StartedAt = &t
	}
	return &c
}
