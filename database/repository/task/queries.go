package taskRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"revamp/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoTaskRepo) GetByID(ctx context.Context, id string) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var task models.Task
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch task %s: %w", id, err)
	}
	return &task, nil
}

// ListByEmployee returns the employee's tasks, optionally narrowed to one status.
func (r *mongoTaskRepo) ListByEmployee(ctx context.Context, employeeID, status string) ([]models.Task, error) {
	filter := bson.M{"assignedEmployeeId": employeeID}
	if status != "" {
		filter["status"] = status
	}
	return r.find(ctx, filter)
}

func (r *mongoTaskRepo) ListByAppointment(ctx context.Context, appointmentID string) ([]models.Task, error) {
	return r.find(ctx, bson.M{"appointmentId": appointmentID})
}

func (r *mongoTaskRepo) find(ctx context.Context, filter bson.M) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "assignedDate", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.Task{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return out, nil
}
