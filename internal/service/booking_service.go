package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"mindscreen/internal/model"
	"mindscreen/internal/repository"
)

// Booking slot parameter names
const (
	paramBookingDate   = "booking_date"
	paramBookingTime   = "booking_time"
	paramContactMethod = "contact_method"
)

// BookingService relays counsellor booking requests
type BookingService struct {
	repo repository.BookingRepo
	now  func() time.Time
}

// NewBookingService creates a new booking service
func NewBookingService(repo repository.BookingRepo) *BookingService {
	return &BookingService{
		repo: repo,
		now:  time.Now,
	}
}

// Book validates the slots and stores the request. Missing slots return
// model.ErrBookingIncomplete.
func (s *BookingService) Book(ctx context.Context, sessionKey string, params map[string]interface{}) (*model.Booking, error) {
	date := stringParam(params, paramBookingDate)
	at := stringParam(params, paramBookingTime)
	method := stringParam(params, paramContactMethod)

	if date == "" || at == "" || method == "" {
		return nil, model.ErrBookingIncomplete
	}

	booking := &model.Booking{
		ID:            "bk_" + uuid.New().String()[:8],
		SessionKey:    sessionKey,
		Date:          date,
		Time:          at,
		ContactMethod: method,
		CreatedAt:     s.now(),
	}

	if s.repo != nil {
		if err := s.repo.Create(ctx, booking); err != nil {
			return nil, fmt.Errorf("failed to store booking: %w", err)
		}
	}

	log.Printf("[Booking] %s booked for session %s", booking.ID, sessionKey)
	return booking, nil
}

func stringParam(params map[string]interface{}, key string) string {
	v, ok := params[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
