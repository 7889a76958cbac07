package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domain "github.com/lumiere-studio/salon-booking/internal/domain/slot"
	"github.com/lumiere-studio/salon-booking/internal/models"
)

const mongoOpTimeout = 5 * time.Second

// SlotMongoRepository stores one document per slot. The unique compound index
// on {date, time} backs Insert; Book is a filtered UpdateOne.
type SlotMongoRepository struct {
	coll *mongo.Collection
}

func NewSlotMongoRepository(db *mongo.Database) *SlotMongoRepository {
	return NewSlotMongoRepositoryWithCollection(db.Collection("slots"))
}

func NewSlotMongoRepositoryWithCollection(coll *mongo.Collection) *SlotMongoRepository {
	return &SlotMongoRepository{coll: coll}
}

// EnsureIndexes creates the unique key index on the slots collection.
func (r *SlotMongoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_date_time"),
	})
	if err != nil {
		return storageErr("create slot indexes", err)
	}
	return nil
}

func (r *SlotMongoRepository) List(ctx context.Context) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storageErr("list slots", err)
	}
	defer cursor.Close(ctx)

	slots := []models.Slot{}
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, storageErr("decode slots", err)
	}
	return slots, nil
}

func (r *SlotMongoRepository) Find(ctx context.Context, key domain.Key) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	var s models.Slot
	err := r.coll.FindOne(ctx, keyFilter(key)).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, storageErr("find slot", err)
	}
	return &s, nil
}

func (r *SlotMongoRepository) Insert(ctx context.Context, key domain.Key) error {
	if err := key.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, models.Slot{Date: key.Date, Time: key.Time})
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateKey
	}
	if err != nil {
		return storageErr("insert slot", err)
	}
	return nil
}

func (r *SlotMongoRepository) Delete(ctx context.Context, key domain.Key) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, keyFilter(key)); err != nil {
		return storageErr("delete slot", err)
	}
	return nil
}

func (r *SlotMongoRepository) Book(ctx context.Context, key domain.Key, client models.Client) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	filter := bson.M{
		"date":   key.Date,
		"time":   key.Time,
		"booked": false,
	}
	update := bson.M{
		"$set": bson.M{
			"booked": true,
			"client": client,
		},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return storageErr("book slot", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSlotUnavailable
	}
	return nil
}

func keyFilter(key domain.Key) bson.M {
	return bson.M{"date": key.Date, "time": key.Time}
}

// Compile-time check
var _ domain.Repository = (*SlotMongoRepository)(nil)
