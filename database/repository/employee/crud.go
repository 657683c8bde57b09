package employeeRepo

import (
	"context"
	"fmt"
	"time"

	"revamp/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoEmployeeRepo) Create(ctx context.Context, emp *models.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if emp.ID == "" {
		emp.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	emp.CreatedAt = now
	emp.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, emp); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmployeeExists
		}
		return fmt.Errorf("failed to insert employee: %w", err)
	}
	return nil
}
