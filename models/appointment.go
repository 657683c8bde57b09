package models

import (
	"strings"
	"time"
)

// Appointment statuses, in lifecycle order.
const (
	StatusPending    = "Pending"
	StatusApproved   = "Approved"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusDelivered  = "Delivered"
)

// AppointmentStatusOrder lists the statuses in the only order they may advance.
var AppointmentStatusOrder = []string{StatusPending, StatusApproved, StatusInProgress, StatusCompleted, StatusDelivered}

// StatusRank returns the position of status in the lifecycle, or -1 when unknown.
func StatusRank(status string) int {
	for i, s := range AppointmentStatusOrder {
		if s == status {
			return i
		}
	}
	return -1
}

const (
	ServiceTypeService      = "Service"
	ServiceTypeModification = "Modification"
)

// NormalizeServiceType maps case variants onto the canonical labels.
func NormalizeServiceType(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "service":
		return ServiceTypeService, true
	case "modification":
		return ServiceTypeModification, true
	}
	return "", false
}

type VehicleDetails struct {
	Make               string `bson:"make,omitempty" json:"make,omitempty"`
	Model              string `bson:"model,omitempty" json:"model,omitempty"`
	Year               string `bson:"year,omitempty" json:"year,omitempty"`
	RegistrationNumber string `bson:"registrationNumber,omitempty" json:"registrationNumber,omitempty"`
}

func (v VehicleDetails) IsEmpty() bool {
	return v.Make == "" && v.Model == "" && v.Year == "" && v.RegistrationNumber == ""
}

// Appointment is a customer request for work on a vehicle.
// AssignedEmployeeIDs and AssignedEmployeeNames always have equal length and correspond by position.
type Appointment struct {
	ID                    string         `bson:"id" json:"id"`
	CustomerID            string         `bson:"customerId" json:"customerId"`
	CustomerName          string         `bson:"customerName" json:"customerName"`
	CustomerEmail         string         `bson:"customerEmail" json:"customerEmail"`
	VehicleID             string         `bson:"vehicleId,omitempty" json:"vehicleId,omitempty"`
	Vehicle               string         `bson:"vehicle,omitempty" json:"vehicle,omitempty"`
	VehicleDetails        VehicleDetails `bson:"vehicleDetails" json:"vehicleDetails"`
	ServiceType           string         `bson:"serviceType" json:"serviceType"`
	Date                  string         `bson:"date" json:"date"`
	TimeSlotID            string         `bson:"timeSlotId,omitempty" json:"timeSlotId,omitempty"`
	TimeSlotStart         string         `bson:"timeSlotStart" json:"timeSlotStart"`
	TimeSlotEnd           string         `bson:"timeSlotEnd" json:"timeSlotEnd"`
	Status                string         `bson:"status" json:"status"`
	AssignedEmployeeIDs   []string       `bson:"assignedEmployeeIds" json:"assignedEmployeeIds"`
	AssignedEmployeeNames []string       `bson:"assignedEmployeeNames" json:"assignedEmployeeNames"`
	Modifications         []string       `bson:"modifications,omitempty" json:"modifications,omitempty"`
	EstimatedCost         float64        `bson:"estimatedCost,omitempty" json:"estimatedCost,omitempty"`
	EstimatedTimeHours    float64        `bson:"estimatedTimeHours,omitempty" json:"estimatedTimeHours,omitempty"`
	Instructions          string         `bson:"instructions,omitempty" json:"instructions,omitempty"`
	Version               int            `bson:"version" json:"version"`
	CreatedAt             time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// VehicleLabel is the human readable vehicle description used on tasks.
func (a *Appointment) VehicleLabel() string {
	if a.Vehicle != "" {
		return a.Vehicle
	}
	d := a.VehicleDetails
	label := strings.TrimSpace(d.Make + " " + d.Model)
	if d.RegistrationNumber != "" {
		if label == "" {
			return d.RegistrationNumber
		}
		label += " (" + d.RegistrationNumber + ")"
	}
	return label
}

// CreateAppointmentInput is what a customer submits. Customer identity is never taken from here.
type CreateAppointmentInput struct {
	ServiceType        string         `json:"serviceType"`
	Date               string         `json:"date"`
	TimeSlotID         string         `json:"timeSlotId,omitempty"`
	TimeSlotStart      string         `json:"timeSlotStart,omitempty"`
	VehicleID          string         `json:"vehicleId,omitempty"`
	Vehicle            string         `json:"vehicle,omitempty"`
	VehicleDetails     VehicleDetails `json:"vehicleDetails"`
	Modifications      []string       `json:"modifications,omitempty"`
	EstimatedCost      float64        `json:"estimatedCost,omitempty"`
	EstimatedTimeHours float64        `json:"estimatedTimeHours,omitempty"`
	Instructions       string         `json:"instructions,omitempty"`
}

// BookingValidation is the dry-run verdict for a prospective booking.
type BookingValidation struct {
	Valid   bool   `json:"valid"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AssignEmployeesRequest struct {
	EmployeeIDs   []string `json:"employeeIds"`
	EmployeeNames []string `json:"employeeNames"`
	AdminID       string   `json:"adminId,omitempty"`
}

// Per-employee outcomes of an assignment.
const (
	OutcomeCreated = "created"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
	OutcomeExists  = "exists"
)

type EmployeeTaskOutcome struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	Outcome      string `json:"outcome"`
	TaskID       string `json:"taskId,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

// AssignmentResult reports the committed appointment and how many tasks were actually created.
type AssignmentResult struct {
	Appointment    *Appointment          `json:"appointment"`
	TasksCreated   int                   `json:"tasksCreated"`
	TasksAttempted int                   `json:"tasksAttempted"`
	Outcomes       []EmployeeTaskOutcome `json:"outcomes"`
	Message        string                `json:"message"`
}

// RemoveEmployeeRequest is the compensation call staffing makes when a task is rejected.
type RemoveEmployeeRequest struct {
	AppointmentID string `json:"appointmentId,omitempty"`
	CustomerID    string `json:"customerId"`
	EmployeeID    string `json:"employeeId"`
	EmployeeName  string `json:"employeeName"`
}

type RemovalResult struct {
	AppointmentID      string   `json:"appointmentId"`
	Status             string   `json:"status"`
	RemainingEmployees []string `json:"remainingEmployees"`
}
