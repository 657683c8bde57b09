package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"

	appointmentRepo "revamp/database/repository/appointment"
	timeslotRepo "revamp/database/repository/timeslot"
	"revamp/models"
	"revamp/services/calendar"
	"revamp/services/peers"
)

// configuredAdminID stands in for DEFAULT_ADMIN_ID.
const configuredAdminID = "ADMIN-7"

// memSlots mimics the store's single-document atomicity with one mutex.
type memSlots struct {
	mu      sync.Mutex
	slots   map[string]*models.TimeSlot
	seq     int
	reserve func(slotID string) error
}

func newMemSlots() *memSlots {
	return &memSlots{slots: map[string]*models.TimeSlot{}}
}

func (m *memSlots) add(id, date, start, end string) *models.TimeSlot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &models.TimeSlot{ID: id, Date: date, Start: start, End: end, IsAvailable: true}
	m.slots[id] = s
	return s
}

func (m *memSlots) get(id string) models.TimeSlot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.slots[id]
}

func (m *memSlots) GetByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[id]
	if !ok {
		return nil, timeslotRepo.ErrSlotNotFound
	}
	c := *s
	return &c, nil
}

func (m *memSlots) GetByDate(ctx context.Context, date string) ([]models.TimeSlot, error) {
	return m.GetByDateRange(ctx, date, date)
}

func (m *memSlots) GetByDateRange(ctx context.Context, from, to string) ([]models.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.TimeSlot{}
	for _, s := range m.slots {
		if s.Date >= from && s.Date <= to {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date+out[i].Start < out[j].Date+out[j].Start })
	return out, nil
}

func (m *memSlots) GetOrCreate(ctx context.Context, date, start, end string) (*models.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.slots {
		if s.Date == date && s.Start == start && s.End == end {
			c := *s
			return &c, nil
		}
	}
	m.seq++
	s := &models.TimeSlot{ID: fmt.Sprintf("slot-%d", m.seq), Date: date, Start: start, End: end, IsAvailable: true}
	m.slots[s.ID] = s
	c := *s
	return &c, nil
}

func (m *memSlots) Reserve(ctx context.Context, slotID, appointmentID string) (*models.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reserve != nil {
		if err := m.reserve(slotID); err != nil {
			return nil, err
		}
	}
	s, ok := m.slots[slotID]
	if !ok {
		return nil, timeslotRepo.ErrSlotNotFound
	}
	if !s.IsAvailable {
		return nil, timeslotRepo.ErrSlotAlreadyBooked
	}
	s.IsAvailable = false
	s.AppointmentID = appointmentID
	c := *s
	return &c, nil
}

func (m *memSlots) Release(ctx context.Context, slotID, appointmentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.slots[slotID]; ok && s.AppointmentID == appointmentID {
		s.IsAvailable = true
		s.AppointmentID = ""
	}
	return nil
}

func (m *memSlots) EnsureIndexes(ctx context.Context) error { return nil }

type memAppointments struct {
	mu        sync.Mutex
	appts     map[string]*models.Appointment
	seq       int
	conflicts int // number of versioned writes to fail before succeeding
}

func newMemAppointments() *memAppointments {
	return &memAppointments{appts: map[string]*models.Appointment{}}
}

func (m *memAppointments) put(a models.Appointment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := a
	m.appts[a.ID] = &c
}

func (m *memAppointments) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.appts)
}

func (m *memAppointments) Create(ctx context.Context, a *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if a.ID == "" {
		a.ID = fmt.Sprintf("appt-%d", m.seq)
	}
	c := *a
	m.appts[a.ID] = &c
	return nil
}

func (m *memAppointments) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	c := *a
	return &c, nil
}

func (m *memAppointments) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.appts[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	delete(m.appts, id)
	return nil
}

func (m *memAppointments) List(ctx context.Context) ([]models.Appointment, error) {
	return m.filter(func(*models.Appointment) bool { return true }), nil
}

func (m *memAppointments) ListByCustomer(ctx context.Context, customerID string) ([]models.Appointment, error) {
	return m.filter(func(a *models.Appointment) bool { return a.CustomerID == customerID }), nil
}

func (m *memAppointments) ListByDateRange(ctx context.Context, from, to string) ([]models.Appointment, error) {
	return m.filter(func(a *models.Appointment) bool { return a.Date >= from && a.Date <= to }), nil
}

func (m *memAppointments) filter(keep func(*models.Appointment) bool) []models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range m.appts {
		if keep(a) {
			out = append(out, *a)
		}
	}
	return out
}

func (m *memAppointments) FindLatestWithEmployee(ctx context.Context, customerID, employeeID, employeeName string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *models.Appointment
	for _, a := range m.appts {
		if a.CustomerID != customerID {
			continue
		}
		if indexOf(a.AssignedEmployeeIDs, employeeID) < 0 && indexOf(a.AssignedEmployeeNames, employeeName) < 0 {
			continue
		}
		if best == nil || a.UpdatedAt.After(best.UpdatedAt) {
			best = a
		}
	}
	if best == nil {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	c := *best
	return &c, nil
}

func (m *memAppointments) versioned(id string, version int, apply func(*models.Appointment)) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	if m.conflicts > 0 {
		m.conflicts--
		a.Version++
		return nil, appointmentRepo.ErrVersionConflict
	}
	if a.Version != version {
		return nil, appointmentRepo.ErrVersionConflict
	}
	apply(a)
	a.Version++
	c := *a
	return &c, nil
}

func (m *memAppointments) UpdateStatus(ctx context.Context, id string, version int, status string) (*models.Appointment, error) {
	return m.versioned(id, version, func(a *models.Appointment) { a.Status = status })
}

func (m *memAppointments) UpdateAssignments(ctx context.Context, id string, version int, ids, names []string, status string) (*models.Appointment, error) {
	return m.versioned(id, version, func(a *models.Appointment) {
		a.AssignedEmployeeIDs = append([]string{}, ids...)
		a.AssignedEmployeeNames = append([]string{}, names...)
		a.Status = status
	})
}

func (m *memAppointments) EnsureIndexes(ctx context.Context) error { return nil }

// stubOracle marks explicit dates unavailable and closes on the schedule's weekday.
type stubOracle struct {
	unavailable map[string]bool
	schedule    calendar.Schedule
}

func newStubOracle(dates ...string) *stubOracle {
	o := &stubOracle{unavailable: map[string]bool{}, schedule: calendar.DefaultSchedule()}
	for _, d := range dates {
		o.unavailable[d] = true
	}
	return o
}

func (o *stubOracle) IsUnavailable(ctx context.Context, date string) (bool, error) {
	return o.unavailable[date], nil
}

func (o *stubOracle) IsWeeklyClosure(date string) bool {
	d, err := calendar.ParseDate(date)
	return err == nil && o.schedule.IsWeeklyClosure(d)
}

func (o *stubOracle) IsClosed(ctx context.Context, date string) (bool, error) {
	return o.unavailable[date] || o.IsWeeklyClosure(date), nil
}

func (o *stubOracle) Add(ctx context.Context, req models.UnavailableDateRequest) (*models.UnavailableDate, error) {
	o.unavailable[req.Date] = true
	return &models.UnavailableDate{Date: req.Date}, nil
}

func (o *stubOracle) Remove(ctx context.Context, id string) error { return nil }

func (o *stubOracle) List(ctx context.Context, from, to string) ([]models.UnavailableDate, error) {
	return nil, nil
}

// fakeStaffing records task creations and fails on request.
type fakeStaffing struct {
	mu        sync.Mutex
	employees map[string]peers.EmployeeRef // by user id
	failFor   map[string]error             // by staffing employee id
	existing  []peers.TaskRef
	listErr   error
	created   []models.TaskPayload
}

func newFakeStaffing(userToEmployee map[string]string) *fakeStaffing {
	f := &fakeStaffing{employees: map[string]peers.EmployeeRef{}, failFor: map[string]error{}}
	for uid, eid := range userToEmployee {
		f.employees[uid] = peers.EmployeeRef{ID: "id-" + eid, EmployeeID: eid, UserID: uid}
	}
	return f
}

func (f *fakeStaffing) ResolveEmployee(ctx context.Context, userID string) (*peers.EmployeeRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ref, ok := f.employees[userID]
	if !ok {
		return nil, &peers.CallError{Op: "resolve employee", Kind: peers.KindNotFound, Status: 404, Err: fmt.Errorf("no employee for %s", userID)}
	}
	return &ref, nil
}

func (f *fakeStaffing) CreateTask(ctx context.Context, payload models.TaskPayload) (*peers.TaskRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failFor[payload.AssignedEmployeeID]; err != nil {
		return nil, err
	}
	f.created = append(f.created, payload)
	return &peers.TaskRef{ID: fmt.Sprintf("task-%d", len(f.created)), AssignedEmployeeID: payload.AssignedEmployeeID, Status: models.TaskAssigned}, nil
}

func (f *fakeStaffing) ListTasksForAppointment(ctx context.Context, appointmentID string) ([]peers.TaskRef, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.existing, nil
}
