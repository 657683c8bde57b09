package appointmentRepo

import (
	"context"
	"errors"

	"revamp/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrVersionConflict means the document changed since it was read.
	ErrVersionConflict = errors.New("appointment version conflict")
)

type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Appointment, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Appointment, error)
	ListByDateRange(ctx context.Context, from, to string) ([]models.Appointment, error)
	FindLatestWithEmployee(ctx context.Context, customerID, employeeID, employeeName string) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, id string, version int, status string) (*models.Appointment, error)
	UpdateAssignments(ctx context.Context, id string, version int, ids, names []string, status string) (*models.Appointment, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

func NewMongoAppointmentRepo(db *mongo.Database) AppointmentRepository {
	return &mongoAppointmentRepo{coll: db.Collection("appointments")}
}
