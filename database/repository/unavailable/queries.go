package unavailableRepo

import (
	"context"
	"fmt"
	"time"

	"revamp/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoUnavailableDateRepo) Exists(ctx context.Context, date string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"date": date}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check unavailable date %s: %w", date, err)
	}
	return n > 0, nil
}

// ListRange returns marked dates between from and to inclusive. Empty bounds are open.
func (r *mongoUnavailableDateRepo) ListRange(ctx context.Context, from, to string) ([]models.UnavailableDate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	dateFilter := bson.M{}
	if from != "" {
		dateFilter["$gte"] = from
	}
	if to != "" {
		dateFilter["$lte"] = to
	}
	if len(dateFilter) > 0 {
		filter["date"] = dateFilter
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list unavailable dates: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.UnavailableDate{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode unavailable dates: %w", err)
	}
	return out, nil
}
