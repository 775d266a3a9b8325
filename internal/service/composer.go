package service

import (
	"errors"
	"fmt"

	"mindscreen/internal/model"
)

// Outcome is everything the composer needs to know about one turn
type Outcome struct {
	Trigger       model.Trigger
	Transition    Transition
	Instrument    model.Instrument // instrument the turn was about, if any
	BatchNotFound bool             // SubmitAnswer found neither a full set nor a usable single value
	Score         *model.ScoreResult
	Verdict       model.EscalationVerdict
	Booking       *model.Booking
	BookingErr    error
	Session       *model.ScreeningSession
}

// Composer turns an outcome into outbound text
type Composer struct {
	helplineName   string
	helplineNumber string
}

// NewComposer creates a composer naming the given crisis helpline
func NewComposer(helplineName, helplineNumber string) *Composer {
	return &Composer{
		helplineName:   helplineName,
		helplineNumber: helplineNumber,
	}
}

// Compose selects the reply text. Escalation wins over every other rule.
func (c *Composer) Compose(o Outcome) *model.Reply {
	reply := &model.Reply{
		Score:   o.Score,
		Verdict: o.Verdict,
		Session: o.Session,
	}

	switch {
	case o.Verdict.Escalate:
		reply.Kind = model.ReplySafety
		reply.Text = c.safetyText(o.Score)
		reply.Escalation = &model.EscalationTag{ReasonCode: o.Verdict.ReasonCode}
		if o.Booking != nil {
			reply.Booking = o.Booking
			reply.Text += "\n" + bookingText(o.Booking, nil)
		}

	case o.Trigger.Kind == model.TriggerBookingRequest:
		reply.Kind = model.ReplyBooking
		reply.Booking = o.Booking
		reply.Text = bookingText(o.Booking, o.BookingErr)

	case o.Transition == TransitionComplete && o.Score != nil:
		reply.Kind = model.ReplySummary
		reply.Text = summaryText(o.Score)

	case o.Transition == TransitionStarted || o.Transition == TransitionAdvanced:
		reply.Kind = model.ReplyNextQuestion
		reply.Text = nextQuestionText(o.Session, o.Transition == TransitionStarted)

	case o.Transition == TransitionRejected:
		reply.Kind = model.ReplyReprompt
		reply.Text = repromptText(o.Session)

	case o.BatchNotFound:
		reply.Kind = model.ReplyReprompt
		reply.Text = fmt.Sprintf("I didn't get all the %s answers. Please answer each question with 0-3.", o.Instrument.Label())

	default:
		reply.Kind = model.ReplyFallback
		reply.Text = "Thanks, I got your message. If you want to take a short questionnaire (PHQ-9 or GAD-7), " +
			"say 'Do the screening'. If you're in crisis, type 'I want to die'."
	}

	return reply
}

func (c *Composer) safetyText(score *model.ScoreResult) string {
	if score != nil {
		return fmt.Sprintf("Your %s score is %d (%s). Because of high distress or self-harm thoughts, "+
			"I recommend immediate support. Would you like me to connect you to the %s helpline (%s) or a counsellor?",
			score.Instrument.Label(), score.Total, score.SeverityLabel, c.helplineName, c.helplineNumber)
	}
	return fmt.Sprintf("I'm really concerned about your safety. If you are in immediate danger, "+
		"please call the %s helpline (%s) or your local emergency number. "+
		"Would you like me to connect you to a counsellor?", c.helplineName, c.helplineNumber)
}

func summaryText(score *model.ScoreResult) string {
	return fmt.Sprintf("Your %s score is %d (%s). %s",
		score.Instrument.Label(), score.Total, score.SeverityLabel, advice(score))
}

// advice is banded by total, per instrument
func advice(score *model.ScoreResult) string {
	if score.Instrument == model.InstrumentGAD7 {
		if score.Total >= 10 {
			return "Talking to a counsellor may help."
		}
		return "You may try some self-care strategies."
	}

	switch {
	case score.Total <= 4:
		return "Minimal symptoms. Self-care may help (sleep, exercise, social support)."
	case score.Total <= 9:
		return "Mild symptoms. Consider self-help strategies and monitor your mood."
	case score.Total <= 14:
		return "Moderate symptoms. Talking to a counsellor could help."
	default:
		return "Moderately severe symptoms. Professional support is strongly recommended."
	}
}

func nextQuestionText(s *model.ScreeningSession, first bool) string {
	prompt, ok := QuestionPrompt(s.Instrument, s.Count())
	if !ok {
		return ""
	}
	if first {
		return fmt.Sprintf("Let's start the %s screening. %s\n%s", s.Instrument.Label(), answerScale, prompt)
	}
	return prompt
}

func repromptText(s *model.ScreeningSession) string {
	prompt, ok := QuestionPrompt(s.Instrument, s.Count())
	if !ok {
		return "Please answer with a number from 0 to 3."
	}
	return "Please answer with a number from 0 to 3.\n" + prompt
}

func bookingText(b *model.Booking, err error) string {
	if errors.Is(err, model.ErrBookingIncomplete) {
		return "To book, I need a date, time, and contact method. Can you provide those?"
	}
	if err != nil || b == nil {
		return "I couldn't complete the booking right now. Please try again in a little while."
	}
	return fmt.Sprintf("Your counselling session is booked for %s at %s. You will be contacted via %s.",
		b.Date, b.Time, b.ContactMethod)
}
