// File: database/repository/timeslot/interface.go
package timeslotRepo

import (
	"context"
	"errors"

	"revamp/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrSlotNotFound      = errors.New("timeslot not found")
	ErrSlotAlreadyBooked = errors.New("timeslot already booked")
)

// TimeSlotRepository is the single source of truth for slot ownership.
// Reserve is the only way a slot becomes unavailable, and it is atomic per slot.
type TimeSlotRepository interface {
	GetByID(ctx context.Context, slotID string) (*models.TimeSlot, error)
	GetByDate(ctx context.Context, date string) ([]models.TimeSlot, error)
	GetByDateRange(ctx context.Context, from, to string) ([]models.TimeSlot, error)
	GetOrCreate(ctx context.Context, date, start, end string) (*models.TimeSlot, error)
	Reserve(ctx context.Context, slotID, appointmentID string) (*models.TimeSlot, error)
	Release(ctx context.Context, slotID, appointmentID string) error
	EnsureIndexes(ctx context.Context) error
}

type mongoTimeSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoTimeSlotRepo constructs a new MongoDB TimeSlotRepository.
func NewMongoTimeSlotRepo(db *mongo.Database) TimeSlotRepository {
	return &mongoTimeSlotRepo{
		coll: db.Collection("timeslots"),
	}
}
