package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	domain "github.com/lumiere-studio/salon-booking/internal/domain/slot"
	"github.com/lumiere-studio/salon-booking/internal/models"
)

func TestSlotMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	key := domain.Key{Date: "2024-05-01", Time: "10:00"}
	ns := "salon.slots"

	mt.Run("InsertOK", func(mt *mtest.T) {
		repo := NewSlotMongoRepositoryWithCollection(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, repo.Insert(ctx, key))
	})

	mt.Run("InsertDuplicate", func(mt *mtest.T) {
		repo := NewSlotMongoRepositoryWithCollection(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		assert.ErrorIs(mt, repo.Insert(ctx, key), domain.ErrDuplicateKey)
	})

	mt.Run("InsertInvalidSkipsServer", func(mt *mtest.T) {
		repo := NewSlotMongoRepositoryWithCollection(mt.Coll)
		assert.ErrorIs(mt, repo.Insert(ctx, domain.Key{Date: "2024-05-01"}), domain.ErrInvalidInput)
	})

	mt.Run("FindBooked", func(mt *mtest.T) {
		repo := NewSlotMongoRepositoryWithCollection(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "date", Value: key.Date},
			{Key: "time", Value: key.Time},
			{Key: "booked", Value: true},
			{Key: "client", Value: bson.D{
				{Key: "firstName", Value: "Ana"},
				{Key: "lastName", Value: "B"},
				{Key: "service", Value: "Manicure"},
			}},
		}))

		got, err := repo.Find(ctx, key)
		require.NoError(mt, err)
		assert.True(mt, got.Booked)
		require.NotNil(mt, got.Client)
		assert.Equal(mt, "Ana", got.Client.FirstName)
	})

	mt.Run("FindMissing", func(mt *mtest.T) {
		repo := NewSlotMongoRepositoryWithCollection(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.Find(ctx, key)
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})

	mt.Run("List", func(mt *mtest.T) {
		repo := NewSlotMongoRepositoryWithCollection(mt.Coll)
		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
			bson.D{{Key: "date", Value: "2024-05-01"}, {Key: "time", Value: "09:00"}, {Key: "booked", Value: false}},
		)
		next := mtest.CreateCursorResponse(0, ns, mtest.NextBatch,
			bson.D{{Key: "date", Value: "2024-05-01"}, {Key: "time", Value: "10:00"}, {Key: "booked", Value: false}},
		)
		mt.AddMockResponses(first, next)

		slots, err := repo.List(ctx)
		require.NoError(mt, err)
		assert.Equal(mt, []models.Slot{
			{Date: "2024-05-01", Time: "09:00"},
			{Date: "2024-05-01", Time: "10:00"},
		}, slots)
	})

	mt.Run("BookMatched", func(mt *mtest.T) {
		repo := NewSlotMongoRepositoryWithCollection(mt.Coll)
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "n", Value: 1},
			{Key: "nModified", Value: 1},
		})

		require.NoError(mt, repo.Book(ctx, key, models.Client{FirstName: "Ana", LastName: "B", Service: "Manicure"}))
	})

	mt.Run("BookAlreadyBooked", func(mt *mtest.T) {
		repo := NewSlotMongoRepositoryWithCollection(mt.Coll)
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "n", Value: 0},
			{Key: "nModified", Value: 0},
		})

		assert.ErrorIs(mt, repo.Book(ctx, key, models.Client{FirstName: "Eve"}), domain.ErrSlotUnavailable)
	})

	mt.Run("DeleteMissingIsOK", func(mt *mtest.T) {
		repo := NewSlotMongoRepositoryWithCollection(mt.Coll)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}})

		require.NoError(mt, repo.Delete(ctx, key))
	})

	mt.Run("StorageFailure", func(mt *mtest.T) {
		repo := NewSlotMongoRepositoryWithCollection(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad value",
		}))

		_, err := repo.List(ctx)
		assert.ErrorIs(mt, err, domain.ErrStorageUnavailable)
	})
}
