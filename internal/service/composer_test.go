package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"mindscreen/internal/model"
)

func TestComposer_EscalationWins(t *testing.T) {
	c := NewComposer("Tele-MANAS", "14416")

	reply := c.Compose(Outcome{
		Trigger:    model.Trigger{Kind: model.TriggerBookingRequest},
		Transition: TransitionComplete,
		Score:      &model.ScoreResult{Instrument: model.InstrumentPHQ9, Total: 21, SeverityLabel: model.SeveritySevere},
		Verdict:    model.EscalationVerdict{Escalate: true, ReasonCode: model.ReasonScoreSevere},
	})

	assert.Equal(t, model.ReplySafety, reply.Kind)
	assert.Equal(t, model.ReasonScoreSevere, reply.Escalation.ReasonCode)
	assert.Contains(t, reply.Text, "Your PHQ-9 score is 21 (Severe)")
	assert.Contains(t, reply.Text, "Tele-MANAS helpline (14416)")
}

func TestComposer_SummaryAdvice(t *testing.T) {
	c := NewComposer("Tele-MANAS", "14416")

	tests := []struct {
		score  model.ScoreResult
		advice string
	}{
		{model.ScoreResult{Instrument: model.InstrumentPHQ9, Total: 3, SeverityLabel: model.SeverityMinimal}, "Minimal symptoms."},
		{model.ScoreResult{Instrument: model.InstrumentPHQ9, Total: 9, SeverityLabel: model.SeverityMild}, "Mild symptoms."},
		{model.ScoreResult{Instrument: model.InstrumentPHQ9, Total: 12, SeverityLabel: model.SeverityModerate}, "Talking to a counsellor could help."},
		{model.ScoreResult{Instrument: model.InstrumentPHQ9, Total: 17, SeverityLabel: model.SeverityModeratelySevere}, "Professional support"},
		{model.ScoreResult{Instrument: model.InstrumentGAD7, Total: 5, SeverityLabel: model.SeverityMild}, "self-care strategies"},
		{model.ScoreResult{Instrument: model.InstrumentGAD7, Total: 10, SeverityLabel: model.SeverityModerate}, "Talking to a counsellor may help."},
	}

	for _, tt := range tests {
		score := tt.score
		reply := c.Compose(Outcome{Transition: TransitionComplete, Score: &score})
		assert.Equal(t, model.ReplySummary, reply.Kind)
		assert.Contains(t, reply.Text, tt.advice)
	}
}

func TestComposer_Questions(t *testing.T) {
	c := NewComposer("Tele-MANAS", "14416")
	s := model.NewSession("k")
	s.Instrument = model.InstrumentPHQ9
	s.Answers = []int{}

	first := c.Compose(Outcome{Transition: TransitionStarted, Session: s})
	assert.Equal(t, model.ReplyNextQuestion, first.Kind)
	assert.Contains(t, first.Text, "Let's start the PHQ-9 screening.")

	s.Answers = []int{1}
	next := c.Compose(Outcome{Transition: TransitionAdvanced, Session: s})
	prompt, ok := QuestionPrompt(model.InstrumentPHQ9, 1)
	assert.True(t, ok)
	assert.Equal(t, prompt, next.Text)

	again := c.Compose(Outcome{Transition: TransitionRejected, Session: s})
	assert.Equal(t, model.ReplyReprompt, again.Kind)
	assert.Contains(t, again.Text, prompt)
}

func TestComposer_Booking(t *testing.T) {
	c := NewComposer("Tele-MANAS", "14416")
	booking := model.Trigger{Kind: model.TriggerBookingRequest}

	incomplete := c.Compose(Outcome{Trigger: booking, BookingErr: model.ErrBookingIncomplete})
	assert.Contains(t, incomplete.Text, "I need a date, time, and contact method")

	failed := c.Compose(Outcome{Trigger: booking, BookingErr: errors.New("down")})
	assert.Contains(t, failed.Text, "couldn't complete the booking")
}

func TestComposer_Fallback(t *testing.T) {
	c := NewComposer("Tele-MANAS", "14416")

	reply := c.Compose(Outcome{Trigger: model.Trigger{Kind: model.TriggerOther}})
	assert.Equal(t, model.ReplyFallback, reply.Kind)
	assert.False(t, reply.Verdict.Escalate)
}

func TestComposer_SafetyKeepsBooking(t *testing.T) {
	c := NewComposer("Tele-MANAS", "14416")
	booking := &model.Booking{ID: "bk_1", Date: "2026-10-20", Time: "10:00", ContactMethod: "phone"}

	reply := c.Compose(Outcome{
		Trigger: model.Trigger{Kind: model.TriggerBookingRequest},
		Booking: booking,
		Verdict: model.EscalationVerdict{Escalate: true, ReasonCode: model.ReasonHighSentimentRisk},
	})

	assert.Equal(t, model.ReplySafety, reply.Kind)
	assert.Same(t, booking, reply.Booking)
	assert.Contains(t, reply.Text, "booked for 2026-10-20 at 10:00")
}
