package booking

import (
	"revamp/models"
	"revamp/services/calendar"
)

var (
	ErrInvalidDate             = calendar.ErrInvalidDate
	ErrInvalidDateRange        = models.NewDomainError(models.KindValidation, "INVALID_DATE_RANGE", "startDate must not be after endDate")
	ErrInvalidServiceType      = models.NewDomainError(models.KindValidation, "INVALID_SERVICE_TYPE", "serviceType must be Service or Modification")
	ErrInvalidTime             = models.NewDomainError(models.KindValidation, "INVALID_TIME", "time must be formatted HH:MM within shop hours")
	ErrDateUnavailable         = models.NewDomainError(models.KindValidation, "DATE_UNAVAILABLE", "the shop is not taking appointments on this date")
	ErrWeeklyClosure           = models.NewDomainError(models.KindValidation, "WEEKLY_CLOSURE", "the shop is closed on this weekday")
	ErrCustomerIdentityMissing = models.NewDomainError(models.KindValidation, "CUSTOMER_IDENTITY_MISSING", "customer identity is required")
	ErrMissingSlot             = models.NewDomainError(models.KindValidation, "MISSING_SLOT", "a time slot is required for service appointments")
	ErrSlotNotFound            = models.NewDomainError(models.KindNotFound, "SLOT_NOT_FOUND", "time slot not found")
	ErrSlotConflict            = models.NewDomainError(models.KindConflict, "SLOT_CONFLICT", "time slot is already booked")
	ErrSlotDateMismatch        = models.NewDomainError(models.KindValidation, "SLOT_DATE_MISMATCH", "time slot is on a different date than the appointment")

	ErrAppointmentNotFound     = models.NewDomainError(models.KindNotFound, "APPOINTMENT_NOT_FOUND", "appointment not found")
	ErrInvalidStatus           = models.NewDomainError(models.KindValidation, "INVALID_STATUS", "unknown appointment status")
	ErrInvalidStatusTransition = models.NewDomainError(models.KindConflict, "INVALID_STATUS_TRANSITION", "appointment status can only advance one step at a time")
	ErrConcurrentUpdate        = models.NewDomainError(models.KindConflict, "CONCURRENT_UPDATE", "appointment was modified concurrently, retry")

	ErrEmployeesRequired    = models.NewDomainError(models.KindValidation, "EMPLOYEES_REQUIRED", "at least one employee id is required")
	ErrEmployeeListMismatch = models.NewDomainError(models.KindValidation, "EMPLOYEE_LIST_MISMATCH", "employeeIds and employeeNames must have the same length")
	ErrStaffingUnavailable  = models.NewDomainError(models.KindRemoteUnavailable, "STAFFING_UNAVAILABLE", "staffing service did not answer")

	ErrRemovalTargetRequired = models.NewDomainError(models.KindValidation, "REMOVAL_TARGET_REQUIRED", "an appointment or customer and an employee id or name are required")
	ErrEmployeeNotAssigned   = models.NewDomainError(models.KindNotFound, "EMPLOYEE_NOT_ASSIGNED", "employee is not assigned to a matching appointment")
)
