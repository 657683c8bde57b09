package models

import "time"

// Task statuses. A rejection is recorded in the history only; the task itself returns to assigned.
const (
	TaskAssigned   = "assigned"
	TaskAccepted   = "accepted"
	TaskInProgress = "in-progress"
	TaskCompleted  = "completed"
	TaskDelivered  = "delivered"
	TaskRejected   = "rejected"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type TaskUpdate struct {
	Status    string    `bson:"status" json:"status"`
	Message   string    `bson:"message" json:"message"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	UpdatedBy string    `bson:"updatedBy" json:"updatedBy"`
}

// Task is a unit of work for one employee, derived from an appointment.
type Task struct {
	ID                 string       `bson:"id" json:"id"`
	AppointmentID      string       `bson:"appointmentId,omitempty" json:"appointmentId,omitempty"`
	CustomerID         string       `bson:"customerId,omitempty" json:"customerId,omitempty"`
	CustomerName       string       `bson:"customerName" json:"customerName"`
	VehicleInfo        string       `bson:"vehicleInfo" json:"vehicleInfo"`
	ServiceType        string       `bson:"serviceType" json:"serviceType"`
	Description        string       `bson:"description" json:"description"`
	Status             string       `bson:"status" json:"status"`
	Priority           string       `bson:"priority" json:"priority"`
	EstimatedHours     float64      `bson:"estimatedHours" json:"estimatedHours"`
	AssignedDate       time.Time    `bson:"assignedDate" json:"assignedDate"`
	DueDate            *time.Time   `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	AssignedEmployeeID string       `bson:"assignedEmployeeId" json:"assignedEmployeeId"`
	AssignedAdminID    string       `bson:"assignedAdminId" json:"assignedAdminId"`
	Instructions       string       `bson:"instructions,omitempty" json:"instructions,omitempty"`
	Updates            []TaskUpdate `bson:"updates" json:"updates"`
	CreatedAt          time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// TaskPayload is the wire body of POST /api/tasks.
type TaskPayload struct {
	AppointmentID      string     `json:"appointmentId,omitempty"`
	CustomerID         string     `json:"customerId,omitempty"`
	CustomerName       string     `json:"customerName"`
	VehicleInfo        string     `json:"vehicleInfo"`
	ServiceType        string     `json:"serviceType"`
	Description        string     `json:"description"`
	Priority           string     `json:"priority"`
	EstimatedHours     float64    `json:"estimatedHours"`
	AssignedDate       *time.Time `json:"assignedDate,omitempty"`
	DueDate            *time.Time `json:"dueDate,omitempty"`
	AssignedEmployeeID string     `json:"assignedEmployeeId"`
	AssignedAdminID    string     `json:"assignedAdminId"`
	Instructions       string     `json:"instructions,omitempty"`
}

// TaskAction is the body of accept/reject/start/complete/deliver.
type TaskAction struct {
	EmployeeID string `json:"employeeId"`
	Notes      string `json:"notes"`
}

type ReassignTaskRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	AdminID    string `json:"adminId"`
}

// RejectionResult reports a rejection and whether the booking side was reconciled.
type RejectionResult struct {
	Task              *Task  `json:"task"`
	Compensated       bool   `json:"compensated"`
	CompensationError string `json:"compensationError,omitempty"`
	AppointmentStatus string `json:"appointmentStatus,omitempty"`
}
