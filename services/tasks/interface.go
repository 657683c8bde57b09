package tasks

import (
	"context"

	employeeRepo "revamp/database/repository/employee"
	taskRepo "revamp/database/repository/task"
	"revamp/models"
	"revamp/services/notification"
	"revamp/services/peers"

	"go.uber.org/zap"
)

// TaskService is the staffing side of the assignment saga.
type TaskService interface {
	CreateTask(ctx context.Context, payload models.TaskPayload) (*models.Task, error)
	GetTask(ctx context.Context, taskID string) (*models.Task, error)
	GetEmployeeTasks(ctx context.Context, employeeID string) ([]models.Task, error)
	GetEmployeeTasksByStatus(ctx context.Context, employeeID, status string) ([]models.Task, error)
	GetTasksForAppointment(ctx context.Context, appointmentID string) ([]models.Task, error)

	AcceptTask(ctx context.Context, taskID string, action models.TaskAction) (*models.Task, error)
	RejectTask(ctx context.Context, taskID string, action models.TaskAction) (*models.RejectionResult, error)
	StartTask(ctx context.Context, taskID string, action models.TaskAction) (*models.Task, error)
	CompleteTask(ctx context.Context, taskID string, action models.TaskAction) (*models.Task, error)
	DeliverTask(ctx context.Context, taskID string, action models.TaskAction) (*models.Task, error)
	ReassignTask(ctx context.Context, taskID string, req models.ReassignTaskRequest) (*models.Task, error)

	SendDueReminder(ctx context.Context, taskID string) error
}

// EmployeeService is the staffing employee directory.
type EmployeeService interface {
	Register(ctx context.Context, req models.RegisterEmployeeRequest) (*models.Employee, error)
	GetByUserID(ctx context.Context, userID string) (*models.Employee, error)
	List(ctx context.Context) ([]models.Employee, error)
}

// DefaultTaskService owns task state. Every transition is one conditional write, so two
// racing actions on the same task cannot both win.
type DefaultTaskService struct {
	Tasks     taskRepo.TaskRepository
	Employees employeeRepo.EmployeeRepository
	// Booking receives the compensation call on rejection. Nil disables compensation.
	Booking  peers.BookingGateway
	Notifier notification.Notifier
	// Reminders schedules due-date reminders. Nil disables them.
	Reminders      ReminderScheduler
	DefaultAdminID string
	Logger         *zap.Logger
}
