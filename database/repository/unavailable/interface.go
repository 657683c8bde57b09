package unavailableRepo

import (
	"context"
	"errors"

	"revamp/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var ErrUnavailableDateNotFound = errors.New("unavailable date not found")

type UnavailableDateRepository interface {
	Upsert(ctx context.Context, date, reason, description string) (*models.UnavailableDate, error)
	Exists(ctx context.Context, date string) (bool, error)
	DeleteByID(ctx context.Context, id string) (*models.UnavailableDate, error)
	ListRange(ctx context.Context, from, to string) ([]models.UnavailableDate, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoUnavailableDateRepo struct {
	coll *mongo.Collection
}

func NewMongoUnavailableDateRepo(db *mongo.Database) UnavailableDateRepository {
	return &mongoUnavailableDateRepo{coll: db.Collection("unavailable_dates")}
}
