package booking

import (
	"strings"
	"time"

	"revamp/models"
	"revamp/services/calendar"
)

// BuildTaskPayload derives the staffing task for one employee from an appointment.
func BuildTaskPayload(appt *models.Appointment, employeeID, adminID string, schedule calendar.Schedule, now time.Time) models.TaskPayload {
	serviceType := strings.ToLower(appt.ServiceType)
	if serviceType == "" {
		serviceType = "service"
	}

	description := strings.Join(appt.Modifications, ", ")
	if description == "" {
		label := appt.ServiceType
		if label == "" {
			label = models.ServiceTypeService
		}
		description = label + " appointment"
	}

	hours := appt.EstimatedTimeHours
	if hours <= 0 && appt.ServiceType == models.ServiceTypeService {
		hours = models.SlotWindow{Start: appt.TimeSlotStart, End: appt.TimeSlotEnd}.Duration().Hours()
	}

	payload := models.TaskPayload{
		AppointmentID:      appt.ID,
		CustomerID:         appt.CustomerID,
		CustomerName:       appt.CustomerName,
		VehicleInfo:        appt.VehicleLabel(),
		ServiceType:        serviceType,
		Description:        description,
		Priority:           models.PriorityMedium,
		EstimatedHours:     hours,
		AssignedDate:       &now,
		AssignedEmployeeID: employeeID,
		AssignedAdminID:    adminID,
		Instructions:       appt.Instructions,
	}
	if due, err := schedule.DueAt(appt.Date); err == nil {
		payload.DueDate = &due
	}
	return payload
}
