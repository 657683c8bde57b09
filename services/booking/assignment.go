package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	appointmentRepo "revamp/database/repository/appointment"
	"revamp/models"
	"revamp/services/calendar"
	"revamp/services/peers"
	"revamp/utils"

	"go.uber.org/zap"
)

// DefaultAssignmentService commits the assignment locally first and then creates tasks remotely.
// Remote failures never undo the local write; they are reported per employee and can be
// reconciled later with RecreateTasks.
type DefaultAssignmentService struct {
	Appointments   appointmentRepo.AppointmentRepository
	Staffing       peers.StaffingGateway
	Schedule       calendar.Schedule
	DefaultAdminID string
	Logger         *zap.Logger
}

func (s *DefaultAssignmentService) Assign(ctx context.Context, appointmentID string, req models.AssignEmployeesRequest) (*models.AssignmentResult, error) {
	ids, names, err := normalizeAssignees(req.EmployeeIDs, req.EmployeeNames)
	if err != nil {
		return nil, err
	}
	adminID := s.adminID(req.AdminID)

	appt, err := s.commit(ctx, appointmentID, ids, names)
	if err != nil {
		return nil, err
	}
	utils.LoggerOr(s.Logger).Info("employees assigned",
		zap.String("appointmentId", appt.ID), zap.Strings("employeeIds", ids), zap.String("adminId", adminID))

	// Task creation outlives the caller's request so a disconnect does not strand half the fan-out.
	result := s.createTasks(context.WithoutCancel(ctx), appt, adminID, nil)
	return result, nil
}

// RecreateTasks creates tasks only for assigned employees that staffing has no task for.
func (s *DefaultAssignmentService) RecreateTasks(ctx context.Context, appointmentID, adminID string) (*models.AssignmentResult, error) {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(appt.AssignedEmployeeIDs) == 0 {
		return &models.AssignmentResult{Appointment: appt, Outcomes: []models.EmployeeTaskOutcome{}, Message: "no employees assigned"}, nil
	}

	existing, err := s.Staffing.ListTasksForAppointment(ctx, appt.ID)
	if err != nil {
		utils.LoggerOr(s.Logger).Error("cannot list existing tasks", zap.String("appointmentId", appt.ID), zap.Error(err))
		return nil, ErrStaffingUnavailable.WithMessage("could not list existing tasks: %v", err)
	}
	held := make(map[string]bool, len(existing))
	for _, t := range existing {
		if t.AssignedEmployeeID != "" {
			held[t.AssignedEmployeeID] = true
		}
	}
	return s.createTasks(context.WithoutCancel(ctx), appt, s.adminID(adminID), held), nil
}

// commit writes both employee lists under the appointment's version, approving it if still pending.
func (s *DefaultAssignmentService) commit(ctx context.Context, id string, ids, names []string) (*models.Appointment, error) {
	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		appt, err := s.Appointments.GetByID(ctx, id)
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		if err != nil {
			return nil, err
		}
		status := appt.Status
		if models.StatusRank(status) < models.StatusRank(models.StatusApproved) {
			status = models.StatusApproved
		}
		updated, err := s.Appointments.UpdateAssignments(ctx, id, appt.Version, ids, names, status)
		if errors.Is(err, appointmentRepo.ErrVersionConflict) {
			continue
		}
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, ErrConcurrentUpdate
}

// createTasks resolves and creates one task per assigned employee, in list order.
// Employees whose staffing id is in held are reported as already having a task.
func (s *DefaultAssignmentService) createTasks(ctx context.Context, appt *models.Appointment, adminID string, held map[string]bool) *models.AssignmentResult {
	logger := utils.LoggerOr(s.Logger).With(zap.String("appointmentId", appt.ID))
	result := &models.AssignmentResult{Appointment: appt, Outcomes: make([]models.EmployeeTaskOutcome, 0, len(appt.AssignedEmployeeIDs))}

	for i, userID := range appt.AssignedEmployeeIDs {
		outcome := models.EmployeeTaskOutcome{EmployeeID: userID}
		if i < len(appt.AssignedEmployeeNames) {
			outcome.EmployeeName = appt.AssignedEmployeeNames[i]
		}

		ref, err := s.Staffing.ResolveEmployee(ctx, userID)
		if err != nil {
			outcome.Outcome = models.OutcomeSkipped
			outcome.Reason = describeFailure(err)
			logger.Warn("skipping task for unresolvable employee", zap.String("employeeId", userID), zap.Error(err))
			result.Outcomes = append(result.Outcomes, outcome)
			continue
		}
		if held[ref.EmployeeID] {
			outcome.Outcome = models.OutcomeExists
			result.Outcomes = append(result.Outcomes, outcome)
			continue
		}

		payload := BuildTaskPayload(appt, ref.EmployeeID, adminID, s.Schedule, time.Now().UTC())
		task, err := s.Staffing.CreateTask(ctx, payload)
		if err != nil {
			outcome.Outcome = models.OutcomeFailed
			outcome.Reason = describeFailure(err)
			logger.Error("task creation failed", zap.String("employeeId", ref.EmployeeID), zap.Error(err))
			result.Outcomes = append(result.Outcomes, outcome)
			continue
		}
		outcome.Outcome = models.OutcomeCreated
		outcome.TaskID = task.ID
		result.TasksCreated++
		result.Outcomes = append(result.Outcomes, outcome)
	}

	for _, o := range result.Outcomes {
		if o.Outcome != models.OutcomeExists {
			result.TasksAttempted++
		}
	}
	result.Message = fmt.Sprintf("%d of %d tasks created", result.TasksCreated, result.TasksAttempted)
	logger.Info("task fan-out finished", zap.Int("created", result.TasksCreated), zap.Int("attempted", result.TasksAttempted))
	return result
}

func (s *DefaultAssignmentService) adminID(requested string) string {
	if id := strings.TrimSpace(requested); id != "" {
		return id
	}
	return s.DefaultAdminID
}

// normalizeAssignees validates the parallel lists and drops repeated ids, keeping the first occurrence.
func normalizeAssignees(ids, names []string) ([]string, []string, error) {
	if len(ids) == 0 {
		return nil, nil, ErrEmployeesRequired
	}
	if len(ids) != len(names) {
		return nil, nil, ErrEmployeeListMismatch
	}
	seen := make(map[string]bool, len(ids))
	outIDs := make([]string, 0, len(ids))
	outNames := make([]string, 0, len(ids))
	for i, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			return nil, nil, ErrEmployeesRequired.WithMessage("employee id at position %d is blank", i)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		outIDs = append(outIDs, id)
		outNames = append(outNames, strings.TrimSpace(names[i]))
	}
	return outIDs, outNames, nil
}

func describeFailure(err error) string {
	switch peers.KindOf(err) {
	case peers.KindNotFound:
		return "employee not found in staffing"
	case peers.KindMalformed:
		return "staffing returned an unusable response"
	case peers.KindUnavailable:
		return "staffing unavailable"
	case peers.KindRejected:
		return "staffing rejected the request"
	}
	return err.Error()
}
