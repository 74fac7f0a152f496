package booking

import (
	"context"
	"errors"
	"fmt"

	"hostelhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository stores bookings as documents keyed by the "id" field.
func NewMongoRepository(coll *mongo.Collection) Repository {
	return &mongoRepository{coll: coll}
}

func (m *mongoRepository) Insert(ctx context.Context, b models.Booking) error {
	if _, err := m.coll.InsertOne(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &ValidationError{Fields: []string{"id"}, Reason: "duplicate id"}
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (m *mongoRepository) Find(ctx context.Context, f Filter) ([]models.Booking, error) {
	filter := bson.M{}
	if f.UserID != "" {
		filter["userId"] = f.UserID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := m.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer cur.Close(ctx)

	bookings := []models.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}

func (m *mongoRepository) Get(ctx context.Context, id string) (models.Booking, error) {
	var b models.Booking
	err := m.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Booking{}, ErrNotFound
	}
	if err != nil {
		return models.Booking{}, fmt.Errorf("get booking %s: %w", id, err)
	}
	return b, nil
}

func (m *mongoRepository) Transition(ctx context.Context, id string, from []models.BookingStatus, update StatusUpdate) (models.Booking, error) {
	set := bson.M{"status": update.Status}
	if update.CancelledAt != 0 {
		set["cancelledAt"] = update.CancelledAt
		if update.CancellationReason != "" {
			set["cancellationReason"] = update.CancellationReason
		}
	}

	res := m.coll.FindOneAndUpdate(ctx,
		bson.M{"id": id, "status": bson.M{"$in": from}},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Booking
	err := res.Decode(&updated)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.Booking{}, fmt.Errorf("update booking %s: %w", id, err)
	}

	// Either the id is unknown or the status guard did not match.
	current, getErr := m.Get(ctx, id)
	if getErr != nil {
		return models.Booking{}, getErr
	}
	return models.Booking{}, &TransitionError{ID: id, From: current.Status, To: update.Status}
}
