package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	taskRepo "revamp/database/repository/task"
	"revamp/models"
	"revamp/utils"

	"go.uber.org/zap"
)

func (s *DefaultTaskService) AcceptTask(ctx context.Context, taskID string, action models.TaskAction) (*models.Task, error) {
	return s.move(ctx, taskID, action, models.TaskAssigned, models.TaskAccepted, "Task accepted by employee")
}

func (s *DefaultTaskService) StartTask(ctx context.Context, taskID string, action models.TaskAction) (*models.Task, error) {
	return s.move(ctx, taskID, action, models.TaskAccepted, models.TaskInProgress, "Work started on task")
}

func (s *DefaultTaskService) CompleteTask(ctx context.Context, taskID string, action models.TaskAction) (*models.Task, error) {
	task, err := s.move(ctx, taskID, action, models.TaskInProgress, models.TaskCompleted, withNotes("Task completed", action.Notes))
	if err != nil {
		return nil, err
	}
	s.notify(ctx, models.Notification{
		RecipientID: task.AssignedAdminID,
		SenderID:    action.EmployeeID,
		Type:        models.NotificationSuccess,
		Title:       "Task Completed",
		Message:     fmt.Sprintf("%s's %s has been completed", task.CustomerName, task.ServiceType),
		TaskID:      task.ID,
	})
	s.notify(ctx, models.Notification{
		RecipientID: task.CustomerID,
		SenderID:    action.EmployeeID,
		Type:        models.NotificationSuccess,
		Title:       "Service Completed",
		Message:     fmt.Sprintf("Your %s for %s has been completed. Your vehicle is ready for pickup!", task.ServiceType, task.VehicleInfo),
		TaskID:      task.ID,
		Metadata:    appointmentMeta(task),
	})
	return task, nil
}

func (s *DefaultTaskService) DeliverTask(ctx context.Context, taskID string, action models.TaskAction) (*models.Task, error) {
	task, err := s.move(ctx, taskID, action, models.TaskCompleted, models.TaskDelivered, withNotes("Vehicle delivered to customer", action.Notes))
	if err != nil {
		return nil, err
	}
	s.notify(ctx, models.Notification{
		RecipientID: task.AssignedAdminID,
		SenderID:    action.EmployeeID,
		Type:        models.NotificationSuccess,
		Title:       "Task Delivered",
		Message:     fmt.Sprintf("%s's %s has been delivered", task.CustomerName, task.ServiceType),
		TaskID:      task.ID,
	})
	s.notify(ctx, models.Notification{
		RecipientID: task.CustomerID,
		SenderID:    action.EmployeeID,
		Type:        models.NotificationSuccess,
		Title:       "Vehicle Delivered",
		Message:     fmt.Sprintf("Your %s for %s has been delivered. Thank you for choosing our service!", task.ServiceType, task.VehicleInfo),
		TaskID:      task.ID,
		Metadata:    appointmentMeta(task),
	})
	return task, nil
}

// RejectTask returns the task to the unassigned pool and asks booking to drop the employee
// from the appointment. The rejection stands even when booking cannot be reached.
func (s *DefaultTaskService) RejectTask(ctx context.Context, taskID string, action models.TaskAction) (*models.RejectionResult, error) {
	actor := strings.TrimSpace(action.EmployeeID)
	if actor == "" {
		return nil, ErrEmployeeIDRequired
	}
	note := strings.TrimSpace(action.Notes)
	if note == "" {
		note = "No reason provided"
	}

	cleared := ""
	task, err := s.Tasks.Apply(ctx, taskRepo.Transition{
		TaskID:             taskID,
		FromStatus:         models.TaskAssigned,
		ExpectedEmployeeID: actor,
		ToStatus:           models.TaskAssigned,
		AssignEmployeeID:   &cleared,
		Update:             history(models.TaskRejected, "Task rejected by employee: "+note, actor),
	})
	if err != nil {
		return nil, s.explain(ctx, taskID, actor, models.TaskRejected, err)
	}

	logger := utils.LoggerOr(s.Logger).With(zap.String("taskId", task.ID), zap.String("employeeId", actor))
	logger.Info("task rejected, awaiting reassignment", zap.String("appointmentId", task.AppointmentID))

	s.notify(ctx, models.Notification{
		RecipientID: task.AssignedAdminID,
		SenderID:    actor,
		Type:        models.NotificationWarning,
		Title:       "Task Rejected - Reassignment Required",
		Message: fmt.Sprintf("%s's %s has been rejected by employee. Task reset to 'assigned' status. Please reassign to another employee.",
			task.CustomerName, task.ServiceType),
		TaskID:   task.ID,
		Metadata: appointmentMeta(task),
	})

	result := &models.RejectionResult{Task: task}
	if s.Booking == nil || (task.AppointmentID == "" && task.CustomerID == "") {
		return result, nil
	}

	req := models.RemoveEmployeeRequest{AppointmentID: task.AppointmentID, CustomerID: task.CustomerID, EmployeeID: actor}
	// Appointments list employees by user id, so translate the staff code when we can.
	if emp, err := s.employee(ctx, actor); err == nil {
		if emp.UserID != "" {
			req.EmployeeID = emp.UserID
		}
		req.EmployeeName = emp.Username
	} else {
		logger.Warn("could not resolve rejecting employee, compensating by staff id", zap.Error(err))
	}

	removal, err := s.Booking.RemoveAssignment(ctx, req)
	if err != nil {
		logger.Error("compensation failed, appointment still lists the employee",
			zap.String("appointmentId", task.AppointmentID), zap.Error(err))
		result.CompensationError = err.Error()
		return result, nil
	}
	result.Compensated = true
	result.AppointmentStatus = removal.Status
	logger.Info("employee removed from appointment",
		zap.String("appointmentId", removal.AppointmentID), zap.Strings("remaining", removal.RemainingEmployees))
	return result, nil
}

// move applies one forward transition held by the acting employee.
func (s *DefaultTaskService) move(ctx context.Context, taskID string, action models.TaskAction, from, to, message string) (*models.Task, error) {
	actor := strings.TrimSpace(action.EmployeeID)
	if actor == "" {
		return nil, ErrEmployeeIDRequired
	}
	task, err := s.Tasks.Apply(ctx, taskRepo.Transition{
		TaskID:             taskID,
		FromStatus:         from,
		ExpectedEmployeeID: actor,
		ToStatus:           to,
		Update:             history(to, message, actor),
	})
	if err != nil {
		return nil, s.explain(ctx, taskID, actor, to, err)
	}
	utils.LoggerOr(s.Logger).Info("task status changed",
		zap.String("taskId", taskID), zap.String("from", from), zap.String("to", to), zap.String("employeeId", actor))
	return task, nil
}

// explain turns a rejected conditional write into the reason the caller can act on.
func (s *DefaultTaskService) explain(ctx context.Context, taskID, actor, to string, err error) error {
	if !errors.Is(err, taskRepo.ErrTransitionRejected) {
		return err
	}
	task, getErr := s.GetTask(ctx, taskID)
	if getErr != nil {
		return getErr
	}
	if task.AssignedEmployeeID != actor {
		return ErrNotTaskAssignee
	}
	return ErrInvalidTaskTransition.WithMessage("task %s is %s and cannot be marked %s", taskID, task.Status, to)
}

func withNotes(message, notes string) string {
	if n := strings.TrimSpace(notes); n != "" {
		return message + ": " + n
	}
	return message
}

func appointmentMeta(task *models.Task) map[string]string {
	if task.AppointmentID == "" {
		return nil
	}
	return map[string]string{"appointmentId": task.AppointmentID}
}
