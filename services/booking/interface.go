package booking

import (
	"context"

	"revamp/models"
)

// ReservationService owns appointment creation and the slot it holds.
type ReservationService interface {
	CreateAppointment(ctx context.Context, identity models.Identity, in models.CreateAppointmentInput) (*models.Appointment, error)
	ValidateBooking(ctx context.Context, identity models.Identity, in models.CreateAppointmentInput) (*models.BookingValidation, error)
	CancelAppointment(ctx context.Context, id string) error
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	ListAppointments(ctx context.Context) ([]models.Appointment, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Appointment, error)
	ListByDateRange(ctx context.Context, from, to string) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Appointment, error)

	AvailableSlots(ctx context.Context, date string) ([]models.TimeSlot, error)
	SlotsInRange(ctx context.Context, from, to string) ([]models.TimeSlot, error)
	GetSlot(ctx context.Context, id string) (*models.TimeSlot, error)
}

// AssignmentService commits employee assignments and fans out task creation to staffing.
type AssignmentService interface {
	Assign(ctx context.Context, appointmentID string, req models.AssignEmployeesRequest) (*models.AssignmentResult, error)
	RecreateTasks(ctx context.Context, appointmentID, adminID string) (*models.AssignmentResult, error)
}

// CompensationService undoes an assignment after staffing reports a rejection.
type CompensationService interface {
	RemoveEmployee(ctx context.Context, req models.RemoveEmployeeRequest) (*models.RemovalResult, error)
}
