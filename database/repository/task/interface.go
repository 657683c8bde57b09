package taskRepo

import (
	"context"
	"errors"

	"revamp/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	// ErrTransitionRejected means the task was not in the expected state or not held by the expected employee.
	ErrTransitionRejected = errors.New("task transition rejected")
)

// Transition describes a conditional state change: it applies only while the task is in
// FromStatus and held by ExpectedEmployeeID.
type Transition struct {
	TaskID             string
	FromStatus         string
	ExpectedEmployeeID string
	ToStatus           string
	// AssignEmployeeID, when set, replaces the holder ("" clears it).
	AssignEmployeeID *string
	Update           models.TaskUpdate
}

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id string) (*models.Task, error)
	ListByEmployee(ctx context.Context, employeeID, status string) ([]models.Task, error)
	ListByAppointment(ctx context.Context, appointmentID string) ([]models.Task, error)
	Apply(ctx context.Context, t Transition) (*models.Task, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoTaskRepo struct {
	coll *mongo.Collection
}

func NewMongoTaskRepo(db *mongo.Database) TaskRepository {
	return &mongoTaskRepo{coll: db.Collection("tasks")}
}
