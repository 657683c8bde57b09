package peers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"revamp/models"
)

// EmployeeRef is what booking needs to know about an employee.
type EmployeeRef struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	UserID     string `json:"userId"`
	Username   string `json:"username"`
	Email      string `json:"email"`
}

// TaskRef is the staffing-side view of a created task.
type TaskRef struct {
	ID                 string `json:"id"`
	AppointmentID      string `json:"appointmentId"`
	AssignedEmployeeID string `json:"assignedEmployeeId"`
	Status             string `json:"status"`
}

// StaffingGateway is booking's client for the staffing service.
type StaffingGateway interface {
	ResolveEmployee(ctx context.Context, userID string) (*EmployeeRef, error)
	CreateTask(ctx context.Context, payload models.TaskPayload) (*TaskRef, error)
	ListTasksForAppointment(ctx context.Context, appointmentID string) ([]TaskRef, error)
}

type httpStaffingGateway struct {
	client *jsonClient
}

// NewStaffingGateway builds a gateway against baseURL. A nil httpClient gets a traced default.
func NewStaffingGateway(baseURL string, timeout time.Duration, httpClient *http.Client) StaffingGateway {
	return &httpStaffingGateway{client: newJSONClient(baseURL, timeout, httpClient)}
}

func (g *httpStaffingGateway) ResolveEmployee(ctx context.Context, userID string) (*EmployeeRef, error) {
	const op = "resolve employee"
	var ref EmployeeRef
	if err := g.client.do(ctx, op, http.MethodGet, "/api/employees/by-user/"+url.PathEscape(userID), nil, &ref); err != nil {
		return nil, err
	}
	if ref.EmployeeID == "" {
		return nil, &CallError{Op: op, Kind: KindMalformed, Status: http.StatusOK, Err: errors.New("employee record has no employeeId")}
	}
	return &ref, nil
}

func (g *httpStaffingGateway) CreateTask(ctx context.Context, payload models.TaskPayload) (*TaskRef, error) {
	const op = "create task"
	var ref TaskRef
	if err := g.client.do(ctx, op, http.MethodPost, "/api/tasks", payload, &ref); err != nil {
		return nil, err
	}
	if ref.ID == "" {
		return nil, &CallError{Op: op, Kind: KindMalformed, Status: http.StatusOK, Err: errors.New("created task has no id")}
	}
	return &ref, nil
}

func (g *httpStaffingGateway) ListTasksForAppointment(ctx context.Context, appointmentID string) ([]TaskRef, error) {
	var refs []TaskRef
	if err := g.client.do(ctx, "list tasks", http.MethodGet, "/api/tasks/appointment/"+url.PathEscape(appointmentID), nil, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}
