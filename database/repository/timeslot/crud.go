// File: database/repository/timeslot/crud.go
package timeslotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"revamp/models"
)

// GetOrCreate returns the slot for (date, start, end), inserting it if absent.
// Concurrent callers converge on one record: the loser of the upsert race hits the
// unique index and re-reads the winner.
func (r *mongoTimeSlotRepo) GetOrCreate(ctx context.Context, date, start, end string) (*models.TimeSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": date, "start": start, "end": end}
	now := time.Now().UTC()
	update := bson.M{
		"$setOnInsert": bson.M{
			"id":          uuid.New().String(),
			"isAvailable": true,
			"createdAt":   now,
			"updatedAt":   now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var slot models.TimeSlot
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&slot)
	if err == nil {
		return &slot, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return nil, fmt.Errorf("failed to get or create timeslot %s %s-%s: %w", date, start, end, err)
	}

	if err := r.coll.FindOne(ctx, filter).Decode(&slot); err != nil {
		return nil, fmt.Errorf("failed to read concurrently created timeslot %s %s-%s: %w", date, start, end, err)
	}
	return &slot, nil
}

// Reserve flips an available slot to unavailable and records the owner in one conditional write.
// When nothing matches, a follow-up read tells a missing slot apart from a taken one.
func (r *mongoTimeSlotRepo) Reserve(ctx context.Context, slotID, appointmentID string) (*models.TimeSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": slotID, "isAvailable": true}
	update := bson.M{
		"$set": bson.M{
			"isAvailable":   false,
			"appointmentId": appointmentID,
			"updatedAt":     time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var slot models.TimeSlot
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&slot)
	if err == nil {
		return &slot, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to reserve timeslot %s: %w", slotID, err)
	}

	var current models.TimeSlot
	err = r.coll.FindOne(ctx, bson.M{"id": slotID}).Decode(&current)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to inspect timeslot %s after lost reservation: %w", slotID, err)
	}
	// Either owned by someone else, or released between the two reads; both are a lost race.
	return nil, ErrSlotAlreadyBooked
}

// Release makes the slot bookable again, but only while appointmentID still occupies it.
// Releasing a free, unknown or re-booked slot is a no-op.
func (r *mongoTimeSlotRepo) Release(ctx context.Context, slotID, appointmentID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": slotID, "appointmentId": appointmentID}
	update := bson.M{
		"$set":   bson.M{"isAvailable": true, "updatedAt": time.Now().UTC()},
		"$unset": bson.M{"appointmentId": ""},
	}
	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to release timeslot %s: %w", slotID, err)
	}
	return nil
}
