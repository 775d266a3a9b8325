package service

import (
	"fmt"
	"time"

	"mindscreen/internal/model"
)

// Transition names what happened to the session during one turn
type Transition string

const (
	TransitionNone     Transition = "none"     // session untouched
	TransitionStarted  Transition = "started"  // IDLE or IN_PROGRESS -> IN_PROGRESS(i, 0)
	TransitionAdvanced Transition = "advanced" // IN_PROGRESS(i, k) -> IN_PROGRESS(i, k+1)
	TransitionRejected Transition = "rejected" // invalid answer, no change
	TransitionComplete Transition = "complete" // -> COMPLETE(i), scored in the same turn
)

// DriveMode is how the answers for a completed questionnaire arrived
type DriveMode string

const (
	ModeBatch      DriveMode = "batch"
	ModeTurnByTurn DriveMode = "turn_by_turn"
)

// startInstrument moves the session to IN_PROGRESS(i, 0). Any partial set,
// for this or another instrument, is discarded.
func startInstrument(s *model.ScreeningSession, instrument model.Instrument, now time.Time) {
	s.Instrument = instrument
	s.Answers = []int{}
	s.StartedAt = &now
	s.UpdatedAt = now
}

// appendAnswer applies one turn-by-turn answer. The answers slice is
// replaced, never written in place.
func appendAnswer(s *model.ScreeningSession, v int, now time.Time) (Transition, error) {
	if s.State() != model.SessionInProgress {
		return TransitionNone, fmt.Errorf("%w: append on %s session", model.ErrInstrumentMismatch, s.State())
	}
	if !model.ValidAnswer(v) {
		return TransitionRejected, nil
	}

	next := make([]int, len(s.Answers), len(s.Answers)+1)
	copy(next, s.Answers)
	s.Answers = append(next, v)
	s.UpdatedAt = now

	if s.State() == model.SessionComplete {
		return TransitionComplete, nil
	}
	return TransitionAdvanced, nil
}

// completeBatch jumps straight to COMPLETE(i) with a full answer set
func completeBatch(s *model.ScreeningSession, instrument model.Instrument, answers []int, now time.Time) {
	s.Instrument = instrument
	s.Answers = append([]int(nil), answers...)
	s.UpdatedAt = now
}

// reset returns the session to IDLE after scoring
func reset(s *model.ScreeningSession, now time.Time) {
	s.Instrument = model.InstrumentNone
	s.Answers = nil
	s.StartedAt = nil
	s.UpdatedAt = now
}
