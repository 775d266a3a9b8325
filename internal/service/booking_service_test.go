package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindscreen/internal/model"
)

type memBookingRepo struct {
	created []*model.Booking
	err     error
}

func (r *memBookingRepo) Create(_ context.Context, b *model.Booking) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, b)
	return nil
}

func TestBookingService_Book(t *testing.T) {
	repo := &memBookingRepo{}
	svc := NewBookingService(repo)

	booking, err := svc.Book(context.Background(), "s1", map[string]interface{}{
		"booking_date":   " 2026-10-20 ",
		"booking_time":   "15:30",
		"contact_method": "whatsapp",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-10-20", booking.Date)
	assert.Equal(t, "15:30", booking.Time)
	assert.Equal(t, "whatsapp", booking.ContactMethod)
	assert.Len(t, booking.ID, len("bk_")+8)
	assert.Len(t, repo.created, 1)
}

func TestBookingService_Incomplete(t *testing.T) {
	repo := &memBookingRepo{}
	svc := NewBookingService(repo)

	_, err := svc.Book(context.Background(), "s1", map[string]interface{}{
		"booking_date": "2026-10-20",
		"booking_time": nil,
	})
	assert.ErrorIs(t, err, model.ErrBookingIncomplete)
	assert.Empty(t, repo.created)
}

func TestBookingService_StoreFailure(t *testing.T) {
	svc := NewBookingService(&memBookingRepo{err: errors.New("down")})

	_, err := svc.Book(context.Background(), "s1", map[string]interface{}{
		"booking_date":   "2026-10-20",
		"booking_time":   "15:30",
		"contact_method": "phone",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrBookingIncomplete)
}
