package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"mindscreen/internal/model"
)

func TestBookingRepo_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		repo := NewBookingRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		booking := &model.Booking{ID: "bk_1", SessionKey: "s1", Date: "2026-10-20", Time: "10:00", ContactMethod: "phone"}
		assert.NoError(mt, repo.Create(context.Background(), booking))
		assert.False(mt, booking.CreatedAt.IsZero())
	})

	mt.Run("duplicate id", func(mt *mtest.T) {
		repo := NewBookingRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.Create(context.Background(), &model.Booking{ID: "bk_1"})
		assert.Error(mt, err)
	})
}
