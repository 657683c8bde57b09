package tasks

import "revamp/models"

var (
	ErrTaskNotFound          = models.NewDomainError(models.KindNotFound, "TASK_NOT_FOUND", "task not found")
	ErrNotTaskAssignee       = models.NewDomainError(models.KindForbidden, "NOT_TASK_ASSIGNEE", "task is not assigned to this employee")
	ErrInvalidTaskTransition = models.NewDomainError(models.KindConflict, "INVALID_TASK_TRANSITION", "task cannot move to the requested status")
	ErrTaskNotReassignable   = models.NewDomainError(models.KindConflict, "TASK_NOT_REASSIGNABLE", "only unassigned tasks awaiting reassignment can be reassigned")
	ErrEmployeeIDRequired    = models.NewDomainError(models.KindValidation, "EMPLOYEE_ID_REQUIRED", "employeeId is required")
	ErrEmployeeNotFound      = models.NewDomainError(models.KindNotFound, "EMPLOYEE_NOT_FOUND", "employee not found")
	ErrEmployeeExists        = models.NewDomainError(models.KindConflict, "EMPLOYEE_EXISTS", "employee id or user id is already registered")
	ErrInvalidPriority       = models.NewDomainError(models.KindValidation, "INVALID_PRIORITY", "priority must be low, medium or high")
)
