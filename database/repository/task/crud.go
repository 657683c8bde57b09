package taskRepo

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

func (r *mongoTaskRepo) Create(ctx context.Context, task *models.Task) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Updates == nil {
		task.Updates = []models.TaskUpdate{}
	}
	if _, err := r.coll.InsertOne(ctx, task); err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// Apply performs the transition as one conditional write and appends its history entry.
func (r *mongoTaskRepo) Apply(ctx context.Context, t Transition) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":                 t.TaskID,
		"status":             t.FromStatus,
		"assignedEmployeeId": t.ExpectedEmployeeID,
	}
	set := bson.M{
		"status":    t.ToStatus,
		"updatedAt": time.Now().UTC(),
	}
	if t.AssignEmployeeID != nil {
		set["assignedEmployeeId"] = *t.AssignEmployeeID
	}
	update := bson.M{
		"$set":  set,
		"$push": bson.M{"updates": t.Update},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out models.Task
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrTransitionRejected
	}
	if err != nil {
		return nil, fmt.Errorf("failed to move task %s to %s: %w", t.TaskID, t.ToStatus, err)
	}
	return &out, nil
}
