package peers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"revamp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEmployee(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/employees/by-user/u-1":
			_ = json.NewEncoder(w).Encode(EmployeeRef{ID: "e-1", EmployeeID: "EMP001", UserID: "u-1", Username: "ann"})
		case "/api/employees/by-user/u-blank":
			_ = json.NewEncoder(w).Encode(EmployeeRef{ID: "e-2", UserID: "u-blank"})
		case "/api/employees/by-user/u-junk":
			_, _ = w.Write([]byte("<html>"))
		default:
			http.Error(w, `{"error":"EMPLOYEE_NOT_FOUND"}`, http.StatusNotFound)
		}
	}))
	defer srv.Close()

	g := NewStaffingGateway(srv.URL, time.Second, srv.Client())

	ref, err := g.ResolveEmployee(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "EMP001", ref.EmployeeID)

	_, err = g.ResolveEmployee(context.Background(), "u-missing")
	assert.True(t, IsNotFound(err))

	_, err = g.ResolveEmployee(context.Background(), "u-blank")
	assert.True(t, IsMalformed(err))

	_, err = g.ResolveEmployee(context.Background(), "u-junk")
	assert.True(t, IsMalformed(err))
}

func TestCreateTaskSendsPayload(t *testing.T) {
	var got models.TaskPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/tasks", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(TaskRef{ID: "t-1", AssignedEmployeeID: got.AssignedEmployeeID, Status: "assigned"})
	}))
	defer srv.Close()

	g := NewStaffingGateway(srv.URL, time.Second, srv.Client())
	ref, err := g.CreateTask(context.Background(), models.TaskPayload{AssignedEmployeeID: "EMP001", ServiceType: "service"})
	require.NoError(t, err)
	assert.Equal(t, "t-1", ref.ID)
	assert.Equal(t, "EMP001", got.AssignedEmployeeID)
}

func TestServerErrorsAreUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := NewStaffingGateway(srv.URL, time.Second, srv.Client())
	_, err := g.CreateTask(context.Background(), models.TaskPayload{})
	assert.Equal(t, KindUnavailable, KindOf(err))
}

func TestRejectedRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad", http.StatusBadRequest)
	}))
	defer srv.Close()

	g := NewBookingGateway(srv.URL, time.Second, srv.Client())
	_, err := g.RemoveAssignment(context.Background(), models.RemoveEmployeeRequest{CustomerID: "c-1"})
	var ce *CallError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindRejected, ce.Kind)
	assert.Equal(t, http.StatusBadRequest, ce.Status)
}

func TestTimeoutIsBoundedAndUnavailable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	g := NewBookingGateway(srv.URL, 50*time.Millisecond, srv.Client())
	start := time.Now()
	_, err := g.RemoveAssignment(context.Background(), models.RemoveEmployeeRequest{CustomerID: "c-1"})
	assert.Equal(t, KindUnavailable, KindOf(err))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRemoveAssignmentDecodesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/bookings/appointments/v1/remove-employee", r.URL.Path)
		_ = json.NewEncoder(w).Encode(models.RemovalResult{AppointmentID: "a-1", Status: models.StatusApproved, RemainingEmployees: []string{}})
	}))
	defer srv.Close()

	g := NewBookingGateway(srv.URL, time.Second, srv.Client())
	res, err := g.RemoveAssignment(context.Background(), models.RemoveEmployeeRequest{AppointmentID: "a-1", EmployeeID: "u-1"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, res.Status)
}
