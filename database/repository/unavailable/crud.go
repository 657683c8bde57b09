package unavailableRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"revamp/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Upsert marks date unavailable, updating the reason when the date is already marked.
func (r *mongoUnavailableDateRepo) Upsert(ctx context.Context, date, reason, description string) (*models.UnavailableDate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"reason":      reason,
			"description": description,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{
			"id":        uuid.New().String(),
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var out models.UnavailableDate
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"date": date}, update, opts).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to mark %s unavailable: %w", date, err)
	}
	return &out, nil
}

func (r *mongoUnavailableDateRepo) DeleteByID(ctx context.Context, id string) (*models.UnavailableDate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var out models.UnavailableDate
	err := r.coll.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUnavailableDateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete unavailable date %s: %w", id, err)
	}
	return &out, nil
}
