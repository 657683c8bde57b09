package employeeRepo

import (
	"context"
	"errors"

	"revamp/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeExists   = errors.New("employee already registered")
)

type EmployeeRepository interface {
	Create(ctx context.Context, emp *models.Employee) error
	GetByUserID(ctx context.Context, userID string) (*models.Employee, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error)
	List(ctx context.Context) ([]models.Employee, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoEmployeeRepo struct {
	coll *mongo.Collection
}

func NewMongoEmployeeRepo(db *mongo.Database) EmployeeRepository {
	return &mongoEmployeeRepo{coll: db.Collection("employees")}
}
