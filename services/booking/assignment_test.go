package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"revamp/models"
	"revamp/services/calendar"
	"revamp/services/peers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAssignmentFixture(staffing *fakeStaffing) (*DefaultAssignmentService, *memAppointments) {
	appts := newMemAppointments()
	appts.put(models.Appointment{
		ID:            "a1",
		CustomerID:    "cust-1",
		CustomerName:  "Alice",
		Vehicle:       "Toyota Supra",
		ServiceType:   models.ServiceTypeService,
		Date:          tuesday,
		TimeSlotStart: "08:00",
		TimeSlotEnd:   "11:00",
		Status:        models.StatusPending,
	})
	return &DefaultAssignmentService{
		Appointments:   appts,
		Staffing:       staffing,
		Schedule:       calendar.DefaultSchedule(),
		DefaultAdminID: configuredAdminID,
		Logger:         zap.NewNop(),
	}, appts
}

func TestAssign_PartialSuccessStillCommits(t *testing.T) {
	staffing := newFakeStaffing(map[string]string{"u1": "EMP001", "u3": "EMP003"})
	svc, appts := newAssignmentFixture(staffing)

	res, err := svc.Assign(context.Background(), "a1", models.AssignEmployeesRequest{
		EmployeeIDs:   []string{"u1", "u2", "u3"},
		EmployeeNames: []string{"Bob", "Carol", "Dan"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.TasksCreated)
	assert.Equal(t, 3, res.TasksAttempted)
	assert.Equal(t, "2 of 3 tasks created", res.Message)
	require.Len(t, res.Outcomes, 3)
	assert.Equal(t, models.OutcomeCreated, res.Outcomes[0].Outcome)
	assert.Equal(t, models.OutcomeSkipped, res.Outcomes[1].Outcome)
	assert.Equal(t, "Carol", res.Outcomes[1].EmployeeName)
	assert.Equal(t, models.OutcomeCreated, res.Outcomes[2].Outcome)

	stored, err := appts.GetByID(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2", "u3"}, stored.AssignedEmployeeIDs)
	assert.Equal(t, []string{"Bob", "Carol", "Dan"}, stored.AssignedEmployeeNames)
	assert.Equal(t, models.StatusApproved, stored.Status)

	require.Len(t, staffing.created, 2)
	assert.Equal(t, "EMP001", staffing.created[0].AssignedEmployeeID)
	assert.Equal(t, "EMP003", staffing.created[1].AssignedEmployeeID)
	assert.Equal(t, configuredAdminID, staffing.created[0].AssignedAdminID)
}

func TestAssign_StaffingDownReportsZeroCreated(t *testing.T) {
	staffing := newFakeStaffing(map[string]string{"u1": "EMP001"})
	staffing.failFor["EMP001"] = &peers.CallError{Op: "create task", Kind: peers.KindUnavailable, Err: errors.New("connection refused")}
	svc, appts := newAssignmentFixture(staffing)

	res, err := svc.Assign(context.Background(), "a1", models.AssignEmployeesRequest{
		EmployeeIDs:   []string{"u1"},
		EmployeeNames: []string{"Bob"},
		AdminID:       "ADMIN042",
	})
	require.NoError(t, err)
	assert.Equal(t, "0 of 1 tasks created", res.Message)
	assert.Equal(t, models.OutcomeFailed, res.Outcomes[0].Outcome)
	assert.Equal(t, "staffing unavailable", res.Outcomes[0].Reason)

	stored, _ := appts.GetByID(context.Background(), "a1")
	assert.Equal(t, []string{"u1"}, stored.AssignedEmployeeIDs)
}

func TestAssign_Validation(t *testing.T) {
	svc, _ := newAssignmentFixture(newFakeStaffing(nil))
	ctx := context.Background()

	_, err := svc.Assign(ctx, "a1", models.AssignEmployeesRequest{})
	assert.ErrorIs(t, err, ErrEmployeesRequired)

	_, err = svc.Assign(ctx, "a1", models.AssignEmployeesRequest{EmployeeIDs: []string{"u1", "u2"}, EmployeeNames: []string{"Bob"}})
	assert.ErrorIs(t, err, ErrEmployeeListMismatch)

	_, err = svc.Assign(ctx, "missing", models.AssignEmployeesRequest{EmployeeIDs: []string{"u1"}, EmployeeNames: []string{"Bob"}})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestAssign_DropsRepeatedIDs(t *testing.T) {
	staffing := newFakeStaffing(map[string]string{"u1": "EMP001", "u2": "EMP002"})
	svc, _ := newAssignmentFixture(staffing)

	res, err := svc.Assign(context.Background(), "a1", models.AssignEmployeesRequest{
		EmployeeIDs:   []string{"u1", "u2", "u1"},
		EmployeeNames: []string{"Bob", "Carol", "Bobby"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, res.Appointment.AssignedEmployeeIDs)
	assert.Equal(t, []string{"Bob", "Carol"}, res.Appointment.AssignedEmployeeNames)
	assert.Len(t, staffing.created, 2)
}

func TestAssign_NeverRegressesStatus(t *testing.T) {
	svc, appts := newAssignmentFixture(newFakeStaffing(map[string]string{"u1": "EMP001"}))
	appts.put(models.Appointment{ID: "a2", Status: models.StatusInProgress, Date: tuesday})

	res, err := svc.Assign(context.Background(), "a2", models.AssignEmployeesRequest{EmployeeIDs: []string{"u1"}, EmployeeNames: []string{"Bob"}})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, res.Appointment.Status)
}

func TestRecreateTasks_OnlyMissingEmployees(t *testing.T) {
	staffing := newFakeStaffing(map[string]string{"u1": "EMP001", "u2": "EMP002"})
	staffing.existing = []peers.TaskRef{{ID: "t1", AppointmentID: "a1", AssignedEmployeeID: "EMP001", Status: models.TaskAccepted}}
	svc, appts := newAssignmentFixture(staffing)
	appts.put(models.Appointment{
		ID: "a1", Date: tuesday, Status: models.StatusApproved, ServiceType: models.ServiceTypeService,
		AssignedEmployeeIDs: []string{"u1", "u2"}, AssignedEmployeeNames: []string{"Bob", "Carol"},
	})

	res, err := svc.RecreateTasks(context.Background(), "a1", "")
	require.NoError(t, err)
	assert.Equal(t, "1 of 1 tasks created", res.Message)
	assert.Equal(t, models.OutcomeExists, res.Outcomes[0].Outcome)
	assert.Equal(t, models.OutcomeCreated, res.Outcomes[1].Outcome)
	require.Len(t, staffing.created, 1)
	assert.Equal(t, "EMP002", staffing.created[0].AssignedEmployeeID)
}

func TestRecreateTasks_StaffingUnavailable(t *testing.T) {
	staffing := newFakeStaffing(nil)
	staffing.listErr = &peers.CallError{Op: "list tasks", Kind: peers.KindUnavailable, Err: errors.New("timeout")}
	svc, appts := newAssignmentFixture(staffing)
	appts.put(models.Appointment{ID: "a1", AssignedEmployeeIDs: []string{"u1"}, AssignedEmployeeNames: []string{"Bob"}})

	_, err := svc.RecreateTasks(context.Background(), "a1", "")
	assert.ErrorIs(t, err, ErrStaffingUnavailable)
}

func TestBuildTaskPayload(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	appt := &models.Appointment{
		ID:             "a1",
		CustomerID:     "cust-1",
		CustomerName:   "Alice",
		VehicleDetails: models.VehicleDetails{Make: "Nissan", Model: "GT-R", RegistrationNumber: "CAB-9"},
		ServiceType:    models.ServiceTypeService,
		Date:           tuesday,
		TimeSlotStart:  "11:00",
		TimeSlotEnd:    "14:00",
	}

	p := BuildTaskPayload(appt, "EMP001", "ADMIN001", calendar.DefaultSchedule(), now)
	assert.Equal(t, "service", p.ServiceType)
	assert.Equal(t, "Service appointment", p.Description)
	assert.Equal(t, "Nissan GT-R (CAB-9)", p.VehicleInfo)
	assert.Equal(t, models.PriorityMedium, p.Priority)
	assert.InDelta(t, 3.0, p.EstimatedHours, 0.001)
	assert.Equal(t, "a1", p.AppointmentID)
	require.NotNil(t, p.DueDate)
	assert.Equal(t, tuesday, p.DueDate.Format(models.DateLayout))
	assert.Equal(t, 17, p.DueDate.Hour())

	appt.ServiceType = models.ServiceTypeModification
	appt.Modifications = []string{"Turbo", "Wrap"}
	appt.EstimatedTimeHours = 12
	p = BuildTaskPayload(appt, "EMP001", "ADMIN001", calendar.DefaultSchedule(), now)
	assert.Equal(t, "modification", p.ServiceType)
	assert.Equal(t, "Turbo, Wrap", p.Description)
	assert.InDelta(t, 12.0, p.EstimatedHours, 0.001)
}
