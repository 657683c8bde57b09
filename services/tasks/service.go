package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	employeeRepo "revamp/database/repository/employee"
	taskRepo "revamp/database/repository/task"
	"revamp/models"
	"revamp/utils"

	"go.uber.org/zap"
)

func (s *DefaultTaskService) CreateTask(ctx context.Context, payload models.TaskPayload) (*models.Task, error) {
	priority := strings.ToLower(strings.TrimSpace(payload.Priority))
	switch priority {
	case "":
		priority = models.PriorityMedium
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	default:
		return nil, ErrInvalidPriority
	}
	serviceType := strings.ToLower(strings.TrimSpace(payload.ServiceType))
	if serviceType == "" {
		serviceType = "service"
	}
	employeeID := strings.TrimSpace(payload.AssignedEmployeeID)
	if employeeID != "" {
		if _, err := s.employee(ctx, employeeID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		AppointmentID:      payload.AppointmentID,
		CustomerID:         payload.CustomerID,
		CustomerName:       payload.CustomerName,
		VehicleInfo:        payload.VehicleInfo,
		ServiceType:        serviceType,
		Description:        payload.Description,
		Status:             models.TaskAssigned,
		Priority:           priority,
		EstimatedHours:     payload.EstimatedHours,
		AssignedDate:       time.Now().UTC(),
		DueDate:            payload.DueDate,
		AssignedEmployeeID: employeeID,
		AssignedAdminID:    s.adminID(payload.AssignedAdminID),
		Instructions:       payload.Instructions,
		Updates:            []models.TaskUpdate{},
	}
	if payload.AssignedDate != nil {
		task.AssignedDate = *payload.AssignedDate
	}
	if err := s.Tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	logger := utils.LoggerOr(s.Logger)
	logger.Info("task created",
		zap.String("taskId", task.ID), zap.String("appointmentId", task.AppointmentID), zap.String("employeeId", task.AssignedEmployeeID))

	if task.AssignedEmployeeID != "" {
		s.notify(ctx, models.Notification{
			RecipientID: task.AssignedEmployeeID,
			SenderID:    task.AssignedAdminID,
			Type:        models.NotificationInfo,
			Title:       "New Task Assigned",
			Message:     fmt.Sprintf("You have been assigned a new task: %s's %s", task.CustomerName, task.ServiceType),
			TaskID:      task.ID,
		})
		s.scheduleReminder(ctx, task)
	}
	return task, nil
}

func (s *DefaultTaskService) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	task, err := s.Tasks.GetByID(ctx, taskID)
	if errors.Is(err, taskRepo.ErrTaskNotFound) {
		return nil, ErrTaskNotFound
	}
	return task, err
}

// GetEmployeeTasks lists only tasks the employee currently holds; rejected tasks have no holder.
func (s *DefaultTaskService) GetEmployeeTasks(ctx context.Context, employeeID string) ([]models.Task, error) {
	return s.GetEmployeeTasksByStatus(ctx, employeeID, "")
}

func (s *DefaultTaskService) GetEmployeeTasksByStatus(ctx context.Context, employeeID, status string) ([]models.Task, error) {
	if strings.TrimSpace(employeeID) == "" {
		return nil, ErrEmployeeIDRequired
	}
	return s.Tasks.ListByEmployee(ctx, employeeID, strings.ToLower(strings.TrimSpace(status)))
}

func (s *DefaultTaskService) GetTasksForAppointment(ctx context.Context, appointmentID string) ([]models.Task, error) {
	return s.Tasks.ListByAppointment(ctx, appointmentID)
}

// ReassignTask hands a task that is waiting after a rejection to a new employee.
func (s *DefaultTaskService) ReassignTask(ctx context.Context, taskID string, req models.ReassignTaskRequest) (*models.Task, error) {
	employeeID := strings.TrimSpace(req.EmployeeID)
	if employeeID == "" {
		return nil, ErrEmployeeIDRequired
	}
	if _, err := s.employee(ctx, employeeID); err != nil {
		return nil, err
	}
	adminID := s.adminID(req.AdminID)

	task, err := s.Tasks.Apply(ctx, taskRepo.Transition{
		TaskID:             taskID,
		FromStatus:         models.TaskAssigned,
		ExpectedEmployeeID: "",
		ToStatus:           models.TaskAssigned,
		AssignEmployeeID:   &employeeID,
		Update:             history(models.TaskAssigned, "Task reassigned to "+employeeID, adminID),
	})
	if errors.Is(err, taskRepo.ErrTransitionRejected) {
		if _, getErr := s.GetTask(ctx, taskID); getErr != nil {
			return nil, getErr
		}
		return nil, ErrTaskNotReassignable
	}
	if err != nil {
		return nil, err
	}

	utils.LoggerOr(s.Logger).Info("task reassigned", zap.String("taskId", taskID), zap.String("employeeId", employeeID))
	s.notify(ctx, models.Notification{
		RecipientID: employeeID,
		SenderID:    adminID,
		Type:        models.NotificationInfo,
		Title:       "New Task Assigned",
		Message:     fmt.Sprintf("You have been assigned a new task: %s's %s", task.CustomerName, task.ServiceType),
		TaskID:      task.ID,
	})
	s.scheduleReminder(ctx, task)
	return task, nil
}

func (s *DefaultTaskService) employee(ctx context.Context, employeeID string) (*models.Employee, error) {
	if s.Employees == nil {
		return &models.Employee{EmployeeID: employeeID}, nil
	}
	emp, err := s.Employees.GetByEmployeeID(ctx, employeeID)
	if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
		return nil, ErrEmployeeNotFound.WithMessage("employee %s not found", employeeID)
	}
	return emp, err
}

func (s *DefaultTaskService) adminID(requested string) string {
	if id := strings.TrimSpace(requested); id != "" {
		return id
	}
	return s.DefaultAdminID
}

// notify is best effort: a lost notification never fails the task operation.
func (s *DefaultTaskService) notify(ctx context.Context, n models.Notification) {
	if s.Notifier == nil || n.RecipientID == "" {
		return
	}
	if err := s.Notifier.Notify(ctx, n); err != nil {
		utils.LoggerOr(s.Logger).Warn("notification failed",
			zap.String("recipientId", n.RecipientID), zap.String("title", n.Title), zap.Error(err))
	}
}

func history(status, message, by string) models.TaskUpdate {
	return models.TaskUpdate{Status: status, Message: message, Timestamp: time.Now().UTC(), UpdatedBy: by}
}
