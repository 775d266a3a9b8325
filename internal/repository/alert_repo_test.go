package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"mindscreen/internal/model"
)

func alertDoc(id, reason string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "sessionKey", Value: "s1"},
		{Key: "reasonCode", Value: reason},
		{Key: "status", Value: "open"},
	}
}

func TestAlertRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create fills defaults", func(mt *mtest.T) {
		repo := NewAlertRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		alert := &model.Alert{ID: "alert_1", SessionKey: "s1", ReasonCode: model.ReasonCrisisIntent}
		require.NoError(mt, repo.Create(ctx, alert))
		assert.Equal(mt, model.AlertOpen, alert.Status)
		assert.False(mt, alert.CreatedAt.IsZero())
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewAlertRepo(mt.DB)
		ns := mt.DB.Name() + ".escalation_alerts"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, alertDoc("alert_1", "flagged_item")))

		alert, err := repo.GetByID(ctx, "alert_1")
		require.NoError(mt, err)
		assert.Equal(mt, "alert_1", alert.ID)
		assert.Equal(mt, model.ReasonFlaggedItem, alert.ReasonCode)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		repo := NewAlertRepo(mt.DB)
		ns := mt.DB.Name() + ".escalation_alerts"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.GetByID(ctx, "alert_x")
		assert.ErrorIs(mt, err, model.ErrAlertNotFound)
	})

	mt.Run("list recent", func(mt *mtest.T) {
		repo := NewAlertRepo(mt.DB)
		ns := mt.DB.Name() + ".escalation_alerts"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			alertDoc("alert_2", "score_severe"),
			alertDoc("alert_1", "crisis_intent"),
		))

		alerts, err := repo.ListRecent(ctx, 10)
		require.NoError(mt, err)
		require.Len(mt, alerts, 2)
		assert.Equal(mt, "alert_2", alerts[0].ID)
	})

	mt.Run("acknowledge", func(mt *mtest.T) {
		repo := NewAlertRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		require.NoError(mt, repo.Acknowledge(ctx, "alert_1", "c_1", time.Now()))
	})

	mt.Run("acknowledge missing", func(mt *mtest.T) {
		repo := NewAlertRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.Acknowledge(ctx, "alert_x", "c_1", time.Now())
		assert.ErrorIs(mt, err, model.ErrAlertNotFound)
	})
}
