package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	employeeRepo "revamp/database/repository/employee"
	taskRepo "revamp/database/repository/task"
	"revamp/models"

	"github.com/hibiken/asynq"
)

// configuredAdminID stands in for DEFAULT_ADMIN_ID.
const configuredAdminID = "ADMIN-7"

type memTasks struct {
	mu    sync.Mutex
	tasks map[string]*models.Task
	seq   int
}

func newMemTasks() *memTasks { return &memTasks{tasks: map[string]*models.Task{}} }

func clone(t *models.Task) *models.Task {
	c := *t
	c.Updates = append([]models.TaskUpdate{}, t.Updates...)
	return &c
}

func (m *memTasks) Create(ctx context.Context, task *models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if task.ID == "" {
		task.ID = fmt.Sprintf("task-%d", m.seq)
	}
	m.tasks[task.ID] = clone(task)
	return nil
}

func (m *memTasks) GetByID(ctx context.Context, id string) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, taskRepo.ErrTaskNotFound
	}
	return clone(t), nil
}

func (m *memTasks) ListByEmployee(ctx context.Context, employeeID, status string) ([]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Task{}
	for _, t := range m.tasks {
		if t.AssignedEmployeeID == employeeID && (status == "" || t.Status == status) {
			out = append(out, *clone(t))
		}
	}
	return out, nil
}

func (m *memTasks) ListByAppointment(ctx context.Context, appointmentID string) ([]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Task{}
	for _, t := range m.tasks {
		if t.AppointmentID == appointmentID {
			out = append(out, *clone(t))
		}
	}
	return out, nil
}

func (m *memTasks) Apply(ctx context.Context, tr taskRepo.Transition) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[tr.TaskID]
	if !ok || t.Status != tr.FromStatus || t.AssignedEmployeeID != tr.ExpectedEmployeeID {
		return nil, taskRepo.ErrTransitionRejected
	}
	t.Status = tr.ToStatus
	if tr.AssignEmployeeID != nil {
		t.AssignedEmployeeID = *tr.AssignEmployeeID
	}
	t.Updates = append(t.Updates, tr.Update)
	return clone(t), nil
}

func (m *memTasks) EnsureIndexes(ctx context.Context) error { return nil }

type memEmployees struct {
	mu   sync.Mutex
	emps []models.Employee
}

func (m *memEmployees) Create(ctx context.Context, emp *models.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.emps {
		if e.EmployeeID == emp.EmployeeID || e.UserID == emp.UserID {
			return employeeRepo.ErrEmployeeExists
		}
	}
	if emp.ID == "" {
		emp.ID = fmt.Sprintf("emp-%d", len(m.emps)+1)
	}
	m.emps = append(m.emps, *emp)
	return nil
}

func (m *memEmployees) find(match func(models.Employee) bool) (*models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.emps {
		if match(e) {
			c := e
			return &c, nil
		}
	}
	return nil, employeeRepo.ErrEmployeeNotFound
}

func (m *memEmployees) GetByUserID(ctx context.Context, userID string) (*models.Employee, error) {
	return m.find(func(e models.Employee) bool { return e.UserID == userID })
}

func (m *memEmployees) GetByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error) {
	return m.find(func(e models.Employee) bool { return e.EmployeeID == employeeID })
}

func (m *memEmployees) List(ctx context.Context) ([]models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Employee{}, m.emps...), nil
}

func (m *memEmployees) EnsureIndexes(ctx context.Context) error { return nil }

type recordingNotifier struct {
	mu   sync.Mutex
	sent []models.Notification
	err  error
}

func (r *recordingNotifier) Notify(ctx context.Context, n models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return r.err
}

func (r *recordingNotifier) titlesFor(recipient string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, n := range r.sent {
		if n.RecipientID == recipient {
			out = append(out, n.Title)
		}
	}
	return out
}

type fakeBooking struct {
	calls []models.RemoveEmployeeRequest
	err   error
}

func (f *fakeBooking) RemoveAssignment(ctx context.Context, req models.RemoveEmployeeRequest) (*models.RemovalResult, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return &models.RemovalResult{AppointmentID: req.AppointmentID, Status: models.StatusApproved, RemainingEmployees: []string{}}, nil
}

type fakeQueue struct {
	tasks []*asynq.Task
	err   error
}

func (q *fakeQueue) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{ID: fmt.Sprintf("job-%d", len(q.tasks)), Type: task.Type()}, nil
}

var errBookingDown = errors.New("booking unavailable")
