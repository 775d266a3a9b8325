package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"mindscreen/internal/model"
	"mindscreen/internal/repository"
)

// AlertService is the human-alerting collaborator: it records escalations
// and pushes them to counsellors watching the live feed.
type AlertService struct {
	repo        repository.AlertRepo
	broadcaster Broadcaster
	now         func() time.Time
}

// NewAlertService creates a new alert service
func NewAlertService(repo repository.AlertRepo) *AlertService {
	return &AlertService{
		repo: repo,
		now:  time.Now,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *AlertService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Raise records an escalation and notifies counsellors
func (s *AlertService) Raise(ctx context.Context, sessionKey string, verdict model.EscalationVerdict, score *model.ScoreResult, sentiment *float64) (*model.Alert, error) {
	alert := &model.Alert{
		ID:         "alert_" + uuid.New().String(),
		SessionKey: sessionKey,
		ReasonCode: verdict.ReasonCode,
		Score:      score,
		Sentiment:  sentiment,
		Status:     model.AlertOpen,
		CreatedAt:  s.now(),
	}

	// counsellors are told even when the store is down
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToCounsellors(EventEscalationAlert, alert)
	}

	if s.repo != nil {
		if err := s.repo.Create(ctx, alert); err != nil {
			return alert, fmt.Errorf("failed to store alert: %w", err)
		}
	}

	log.Printf("[Alerts] raised %s for session %s (reason=%s)", alert.ID, sessionKey, alert.ReasonCode)
	return alert, nil
}

// ListRecent returns the newest alerts first
func (s *AlertService) ListRecent(ctx context.Context, limit int) ([]*model.Alert, error) {
	if s.repo == nil {
		return []*model.Alert{}, nil
	}
	return s.repo.ListRecent(ctx, limit)
}

// Acknowledge marks an alert as picked up by a counsellor
func (s *AlertService) Acknowledge(ctx context.Context, alertID, counsellorID string) (*model.Alert, error) {
	if s.repo == nil {
		return nil, model.ErrAlertNotFound
	}
	if err := s.repo.Acknowledge(ctx, alertID, counsellorID, s.now()); err != nil {
		return nil, err
	}
	alert, err := s.repo.GetByID(ctx, alertID)
	if err != nil {
		return nil, err
	}

	log.Printf("[Alerts] %s acknowledged by %s", alertID, counsellorID)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToCounsellors(EventAlertAcknowledged, alert)
	}
	return alert, nil
}
