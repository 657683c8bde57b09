package calendar

import "revamp/models"

var (
	ErrInvalidDate             = models.NewDomainError(models.KindValidation, "INVALID_DATE", "date must be formatted YYYY-MM-DD")
	ErrUnavailableDateNotFound = models.NewDomainError(models.KindNotFound, "UNAVAILABLE_DATE_NOT_FOUND", "unavailable date not found")
	ErrReasonRequired          = models.NewDomainError(models.KindValidation, "REASON_REQUIRED", "a reason is required")
)
