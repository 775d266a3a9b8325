package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"mindscreen/internal/model"
)

// BookingRepo stores counsellor booking requests
type BookingRepo interface {
	Create(ctx context.Context, booking *model.Booking) error
}

type bookingRepo struct {
	collection *mongo.Collection
}

// NewBookingRepo creates a new booking repository
func NewBookingRepo(db *mongo.Database) BookingRepo {
	return &bookingRepo{
		collection: db.Collection("bookings"),
	}
}

func (r *bookingRepo) Create(ctx context.Context, booking *model.Booking) error {
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, booking)
	return err
}
