package appointmentRepo

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

func (r *mongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	if appt.AssignedEmployeeIDs == nil {
		appt.AssignedEmployeeIDs = []string{}
	}
	if appt.AssignedEmployeeNames == nil {
		appt.AssignedEmployeeNames = []string{}
	}

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}
	return nil
}

func (r *mongoAppointmentRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete appointment %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (r *mongoAppointmentRepo) UpdateStatus(ctx context.Context, id string, version int, status string) (*models.Appointment, error) {
	return r.updateVersioned(ctx, id, version, bson.M{"status": status})
}

// UpdateAssignments rewrites both employee lists together so they can never drift apart.
func (r *mongoAppointmentRepo) UpdateAssignments(ctx context.Context, id string, version int, ids, names []string, status string) (*models.Appointment, error) {
	if len(ids) != len(names) {
		return nil, fmt.Errorf("assignment lists differ in length: %d ids, %d names", len(ids), len(names))
	}
	return r.updateVersioned(ctx, id, version, bson.M{
		"assignedEmployeeIds":   ids,
		"assignedEmployeeNames": names,
		"status":                status,
	})
}

// updateVersioned applies set only if the stored version still equals version.
func (r *mongoAppointmentRepo) updateVersioned(ctx context.Context, id string, version int, set bson.M) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set["updatedAt"] = time.Now().UTC()
	filter := bson.M{"id": id, "version": version}
	update := bson.M{
		"$set": set,
		"$inc": bson.M{"version": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out models.Appointment
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		n, cerr := r.coll.CountDocuments(ctx, bson.M{"id": id}, options.Count().SetLimit(1))
		if cerr != nil {
			return nil, fmt.Errorf("failed to inspect appointment %s: %w", id, cerr)
		}
		if n == 0 {
			return nil, ErrAppointmentNotFound
		}
		return nil, ErrVersionConflict
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment %s: %w", id, err)
	}
	return &out, nil
}
