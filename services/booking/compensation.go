package booking

import (
	"context"
	"errors"
	"strings"

	appointmentRepo "revamp/database/repository/appointment"
	"revamp/models"
	"revamp/utils"

	"go.uber.org/zap"
)

// maxVersionRetries bounds optimistic retries on appointment writes.
const maxVersionRetries = 3

type DefaultCompensationService struct {
	Appointments appointmentRepo.AppointmentRepository
	Logger       *zap.Logger
}

// RemoveEmployee drops one employee from an appointment's assignment lists.
// When nobody is left the appointment goes back to Approved so an admin can reassign it.
func (s *DefaultCompensationService) RemoveEmployee(ctx context.Context, req models.RemoveEmployeeRequest) (*models.RemovalResult, error) {
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	req.EmployeeName = strings.TrimSpace(req.EmployeeName)
	if req.EmployeeID == "" && req.EmployeeName == "" {
		return nil, ErrRemovalTargetRequired
	}
	if req.AppointmentID == "" && req.CustomerID == "" {
		return nil, ErrRemovalTargetRequired
	}
	logger := utils.LoggerOr(s.Logger)

	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		appt, err := s.locate(ctx, req)
		if err != nil {
			return nil, err
		}

		idx := indexOf(appt.AssignedEmployeeIDs, req.EmployeeID)
		if idx < 0 {
			idx = indexOf(appt.AssignedEmployeeNames, req.EmployeeName)
		}
		if idx < 0 {
			return nil, ErrEmployeeNotAssigned
		}

		ids := removeAt(appt.AssignedEmployeeIDs, idx)
		names := removeAt(appt.AssignedEmployeeNames, idx)
		status := appt.Status
		if len(ids) == 0 {
			if models.StatusRank(status) > models.StatusRank(models.StatusApproved) {
				logger.Warn("last employee removed from appointment already in progress; resetting to Approved",
					zap.String("appointmentId", appt.ID), zap.String("status", status))
			}
			status = models.StatusApproved
		}

		updated, err := s.Appointments.UpdateAssignments(ctx, appt.ID, appt.Version, ids, names, status)
		if errors.Is(err, appointmentRepo.ErrVersionConflict) {
			continue
		}
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		if err != nil {
			return nil, err
		}

		logger.Info("employee removed from appointment",
			zap.String("appointmentId", updated.ID),
			zap.String("employeeId", req.EmployeeID),
			zap.Int("remaining", len(updated.AssignedEmployeeIDs)),
			zap.String("status", updated.Status),
		)
		return &models.RemovalResult{
			AppointmentID:      updated.ID,
			Status:             updated.Status,
			RemainingEmployees: updated.AssignedEmployeeIDs,
		}, nil
	}
	return nil, ErrConcurrentUpdate
}

// locate prefers the explicit appointment id; otherwise it falls back to the customer's latest match.
func (s *DefaultCompensationService) locate(ctx context.Context, req models.RemoveEmployeeRequest) (*models.Appointment, error) {
	var (
		appt *models.Appointment
		err  error
	)
	if req.AppointmentID != "" {
		appt, err = s.Appointments.GetByID(ctx, req.AppointmentID)
	} else {
		appt, err = s.Appointments.FindLatestWithEmployee(ctx, req.CustomerID, req.EmployeeID, req.EmployeeName)
	}
	if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		if req.AppointmentID != "" {
			return nil, ErrAppointmentNotFound
		}
		return nil, ErrEmployeeNotAssigned
	}
	return appt, err
}

func indexOf(list []string, v string) int {
	if v == "" {
		return -1
	}
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}

func removeAt(list []string, i int) []string {
	out := make([]string, 0, len(list))
	for j, v := range list {
		if j != i {
			out = append(out, v)
		}
	}
	return out
}
