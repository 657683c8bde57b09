package employeeRepo

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

func (r *mongoEmployeeRepo) GetByUserID(ctx context.Context, userID string) (*models.Employee, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

func (r *mongoEmployeeRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error) {
	return r.findOne(ctx, bson.M{"employeeId": employeeID})
}

func (r *mongoEmployeeRepo) findOne(ctx context.Context, filter bson.M) (*models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var emp models.Employee
	err := r.coll.FindOne(ctx, filter).Decode(&emp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employee: %w", err)
	}
	return &emp, nil
}

func (r *mongoEmployeeRepo) List(ctx context.Context) ([]models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "employeeId", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.Employee{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode employees: %w", err)
	}
	return out, nil
}
