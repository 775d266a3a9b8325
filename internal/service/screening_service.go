package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"mindscreen/internal/cache"
	"mindscreen/internal/escalation"
	"mindscreen/internal/metrics"
	"mindscreen/internal/model"
	"mindscreen/internal/resolver"
	"mindscreen/internal/scoring"
)

// ErrMissingSessionKey is returned for turns without a session key
var ErrMissingSessionKey = errors.New("turn has no session key")

// AlertRaiser hands escalations to the human-alerting side
type AlertRaiser interface {
	Raise(ctx context.Context, sessionKey string, verdict model.EscalationVerdict, score *model.ScoreResult, sentiment *float64) (*model.Alert, error)
}

// Booker relays counsellor booking requests
type Booker interface {
	Book(ctx context.Context, sessionKey string, params map[string]interface{}) (*model.Booking, error)
}

// ScreeningService runs one chat turn through the screening state machine
type ScreeningService struct {
	store     cache.SessionStore
	locks     *sessionLocks
	composer  *Composer
	sentiment SentimentAnalyzer
	alerts    AlertRaiser
	bookings  Booker
	metrics   *metrics.Recorder
	now       func() time.Time
}

// NewScreeningService creates a new screening service
func NewScreeningService(store cache.SessionStore, composer *Composer) *ScreeningService {
	return &ScreeningService{
		store:    store,
		locks:    newSessionLocks(),
		composer: composer,
		metrics:  metrics.Nop(),
		now:      time.Now,
	}
}

// SetSentimentAnalyzer sets the external sentiment collaborator
func (s *ScreeningService) SetSentimentAnalyzer(a SentimentAnalyzer) {
	s.sentiment = a
}

// SetAlertRaiser sets the collaborator notified on escalation
func (s *ScreeningService) SetAlertRaiser(a AlertRaiser) {
	s.alerts = a
}

// SetBooker sets the booking collaborator
func (s *ScreeningService) SetBooker(b Booker) {
	s.bookings = b
}

// SetMetrics sets the metrics recorder
func (s *ScreeningService) SetMetrics(m *metrics.Recorder) {
	if m != nil {
		s.metrics = m
	}
}

// HandleTurn processes one inbound turn and returns the reply to relay.
// User-data problems come back as re-prompt replies; an error means the
// turn was aborted.
func (s *ScreeningService) HandleTurn(ctx context.Context, turn *model.Turn) (*model.Reply, error) {
	if turn == nil || turn.SessionKey == "" {
		return nil, ErrMissingSessionKey
	}
	kind := turn.Trigger.Kind
	if kind == "" {
		kind = model.TriggerOther
	}
	s.metrics.Turn(string(kind))

	// collaborator calls happen before the session lock is taken
	sentiment := s.resolveSentiment(ctx, turn)

	outcome := Outcome{Trigger: turn.Trigger}
	outcome.Trigger.Kind = kind

	if kind == model.TriggerBookingRequest {
		outcome.Booking, outcome.BookingErr = s.book(ctx, turn)
	}

	if err := s.applyTurn(ctx, turn, &outcome); err != nil {
		return nil, err
	}

	outcome.Verdict = escalation.Decide(outcome.Score, kind == model.TriggerCrisisSignal, sentiment)
	reply := s.composer.Compose(outcome)

	if outcome.Verdict.Escalate {
		s.metrics.Escalated(string(outcome.Verdict.ReasonCode))
		log.Printf("[Screening] session %s escalated (reason=%s)", turn.SessionKey, outcome.Verdict.ReasonCode)
		if s.alerts != nil {
			if _, err := s.alerts.Raise(ctx, turn.SessionKey, outcome.Verdict, outcome.Score, sentiment); err != nil {
				log.Printf("[Screening] ERROR: alert delivery failed for session %s: %v", turn.SessionKey, err)
			}
		}
	}

	return reply, nil
}

// applyTurn is the read-modify-write of one session, serialized per key
func (s *ScreeningService) applyTurn(ctx context.Context, turn *model.Turn, o *Outcome) error {
	unlock := s.locks.Lock(turn.SessionKey)
	defer unlock()

	sess, err := s.loadSession(ctx, turn.SessionKey)
	if err != nil {
		return err
	}
	o.Session = sess
	o.Transition = TransitionNone
	now := s.now()
	req := turn.ExtractionRequest()

	switch o.Trigger.Kind {
	case model.TriggerStartInstrument:
		inst := o.Trigger.Instrument
		if !inst.Valid() {
			return nil
		}
		o.Instrument = inst
		// contexts may still hold a previous run's answers, so a start
		// only completes on answers sent with this turn
		fresh := model.AnswerExtractionRequest{Parameters: req.Parameters, RawText: req.RawText}
		if res, err := resolver.ResolveInstrument(fresh, inst); err == nil {
			return s.finishBatch(ctx, sess, inst, res, now, o)
		}
		from := sess.State()
		startInstrument(sess, inst, now)
		o.Transition = TransitionStarted
		log.Printf("[Screening] session %s: %s -> in_progress(%s, 0)", sess.Key, from, inst)
		return s.save(ctx, sess)

	case model.TriggerSubmitAnswer:
		inst := o.Trigger.Instrument
		if !inst.Valid() {
			return nil
		}
		o.Instrument = inst
		if res, err := resolver.ResolveInstrument(req, inst); err == nil {
			return s.finishBatch(ctx, sess, inst, res, now, o)
		}
		if sess.State() == model.SessionInProgress && sess.Instrument == inst {
			return s.applySingle(ctx, sess, o.Trigger.Value, turn.RawText, now, o)
		}
		o.BatchNotFound = true
		log.Printf("[Screening] session %s: no complete %s answer set", sess.Key, inst)
		return nil

	case model.TriggerOther:
		if sess.State() == model.SessionInProgress {
			o.Instrument = sess.Instrument
			return s.applySingle(ctx, sess, nil, turn.RawText, now, o)
		}
	}

	// crisis, booking and idle chatter never change session state
	return nil
}

// applySingle is the turn-by-turn path: one answer per turn
func (s *ScreeningService) applySingle(ctx context.Context, sess *model.ScreeningSession, slot *int, rawText string, now time.Time, o *Outcome) error {
	v, err := singleAnswer(slot, rawText)
	if err != nil {
		o.Transition = TransitionRejected
		log.Printf("[Screening] session %s: rejected answer for %s item %d: %v", sess.Key, sess.Instrument, sess.Count()+1, err)
		return nil
	}

	transition, err := appendAnswer(sess, v, now)
	if err != nil {
		return err
	}
	o.Transition = transition

	if transition == TransitionComplete {
		return s.finish(ctx, sess, ModeTurnByTurn, now, o)
	}
	log.Printf("[Screening] session %s: in_progress(%s, %d)", sess.Key, sess.Instrument, sess.Count())
	return s.save(ctx, sess)
}

// finishBatch jumps IDLE -> COMPLETE with a resolved answer set
func (s *ScreeningService) finishBatch(ctx context.Context, sess *model.ScreeningSession, inst model.Instrument, res *resolver.Result, now time.Time, o *Outcome) error {
	log.Printf("[Screening] session %s: batch %s answers via %s", sess.Key, inst, res.Strategy)
	completeBatch(sess, inst, res.Answers, now)
	o.Transition = TransitionComplete
	return s.finish(ctx, sess, ModeBatch, now, o)
}

// finish scores a COMPLETE session and returns it to IDLE in the same turn
func (s *ScreeningService) finish(ctx context.Context, sess *model.ScreeningSession, mode DriveMode, now time.Time, o *Outcome) error {
	result, err := scoring.Score(sess.Instrument, sess.Answers)
	if err != nil {
		log.Printf("[Screening] ERROR: session %s could not be scored: %v", sess.Key, err)
		return fmt.Errorf("score session %s: %w", sess.Key, err)
	}
	o.Score = &result

	log.Printf("[Screening] session %s: complete(%s) total=%d severity=%q flagged=%t mode=%s",
		sess.Key, result.Instrument, result.Total, result.SeverityLabel, result.FlaggedItem, mode)
	s.metrics.Completed(string(result.Instrument), result.SeverityLabel, string(mode))

	reset(sess, now)
	if err := s.store.Delete(ctx, sess.Key); err != nil {
		return fmt.Errorf("reset session %s: %w", sess.Key, err)
	}
	return nil
}

func (s *ScreeningService) loadSession(ctx context.Context, key string) (*model.ScreeningSession, error) {
	sess, err := s.store.Get(ctx, key)
	if errors.Is(err, model.ErrSessionNotFound) {
		return model.NewSession(key), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", key, err)
	}
	if sess.Key == "" {
		sess.Key = key
	}
	return sess, nil
}

func (s *ScreeningService) save(ctx context.Context, sess *model.ScreeningSession) error {
	if err := s.store.Set(ctx, sess); err != nil {
		return fmt.Errorf("save session %s: %w", sess.Key, err)
	}
	return nil
}

func (s *ScreeningService) book(ctx context.Context, turn *model.Turn) (*model.Booking, error) {
	if s.bookings == nil {
		return nil, errors.New("booking is not configured")
	}
	booking, err := s.bookings.Book(ctx, turn.SessionKey, turn.Parameters)
	if err != nil && !errors.Is(err, model.ErrBookingIncomplete) {
		log.Printf("[Screening] ERROR: booking failed for session %s: %v", turn.SessionKey, err)
	}
	return booking, err
}

// resolveSentiment prefers the platform score and falls back to the
// external analyzer for free text. Lookup failures mean "no signal".
func (s *ScreeningService) resolveSentiment(ctx context.Context, turn *model.Turn) *float64 {
	if turn.Sentiment != nil {
		v := math.Max(-1, math.Min(1, *turn.Sentiment))
		return &v
	}
	text := strings.TrimSpace(turn.RawText)
	if s.sentiment == nil || text == "" {
		return nil
	}
	if _, err := resolver.ParseSingle(text); err == nil {
		return nil // a bare 0-3 answer carries no sentiment
	}

	start := time.Now()
	score, err := s.sentiment.Analyze(ctx, text)
	if err != nil {
		s.metrics.SentimentLookup("error", time.Since(start))
		log.Printf("[Screening] WARN: sentiment lookup failed for session %s: %v", turn.SessionKey, err)
		return nil
	}
	s.metrics.SentimentLookup("ok", time.Since(start))
	return &score
}

// singleAnswer reads a slot value first, then the free-text reply
func singleAnswer(slot *int, rawText string) (int, error) {
	if slot != nil {
		if !model.ValidAnswer(*slot) {
			return 0, model.ErrInvalidAnswerValue
		}
		return *slot, nil
	}
	return resolver.ParseSingle(rawText)
}
