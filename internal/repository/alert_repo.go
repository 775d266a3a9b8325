package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindscreen/internal/model"
)

// AlertRepo stores escalation alerts for counsellor follow-up
type AlertRepo interface {
	Create(ctx context.Context, alert *model.Alert) error
	GetByID(ctx context.Context, id string) (*model.Alert, error)
	ListRecent(ctx context.Context, limit int) ([]*model.Alert, error)
	Acknowledge(ctx context.Context, id, counsellorID string, at time.Time) error
}

type alertRepo struct {
	collection *mongo.Collection
}

// NewAlertRepo creates a new alert repository
func NewAlertRepo(db *mongo.Database) AlertRepo {
	return &alertRepo{
		collection: db.Collection("escalation_alerts"),
	}
}

func (r *alertRepo) Create(ctx context.Context, alert *model.Alert) error {
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now()
	}
	if alert.Status == "" {
		alert.Status = model.AlertOpen
	}
	_, err := r.collection.InsertOne(ctx, alert)
	return err
}

func (r *alertRepo) GetByID(ctx context.Context, id string) (*model.Alert, error) {
	var alert model.Alert
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&alert)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrAlertNotFound
	}
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepo) ListRecent(ctx context.Context, limit int) ([]*model.Alert, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var alerts []*model.Alert
	if err = cursor.All(ctx, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepo) Acknowledge(ctx context.Context, id, counsellorID string, at time.Time) error {
	update := bson.M{"$set": bson.M{
		"status":         model.AlertAcknowledged,
		"acknowledgedBy": counsellorID,
		"acknowledgedAt": at,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrAlertNotFound
	}
	return nil
}
