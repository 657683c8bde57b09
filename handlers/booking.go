package handlers

import (
	"net/http"
	"strings"

	"revamp/middleware"
	"revamp/models"
	"revamp/services/booking"
	"revamp/services/calendar"
	"revamp/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	Reservations booking.ReservationService
	Assignments  booking.AssignmentService
	Compensation booking.CompensationService
	Calendar     calendar.Oracle
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request payload: "+err.Error())
		return false
	}
	return true
}

// GET /timeslots/available?date=
func (h *BookingHandler) AvailableSlotsHandler(c *gin.Context) {
	slots, err := h.Reservations.AvailableSlots(c.Request.Context(), c.Query("date"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// GET /timeslots/range?startDate=&endDate=
func (h *BookingHandler) SlotsInRangeHandler(c *gin.Context) {
	slots, err := h.Reservations.SlotsInRange(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (h *BookingHandler) GetSlotHandler(c *gin.Context) {
	slot, err := h.Reservations.GetSlot(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

// CreateAppointmentHandler books for the authenticated customer. The customer is never read from the body.
func (h *BookingHandler) CreateAppointmentHandler(c *gin.Context) {
	var in models.CreateAppointmentInput
	if !bindJSON(c, &in) {
		return
	}
	appt, err := h.Reservations.CreateAppointment(c.Request.Context(), middleware.IdentityFrom(c), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("appointment created", zap.String("appointmentId", appt.ID))
	c.JSON(http.StatusCreated, appt)
}

func (h *BookingHandler) ValidateBookingHandler(c *gin.Context) {
	var in models.CreateAppointmentInput
	if !bindJSON(c, &in) {
		return
	}
	verdict, err := h.Reservations.ValidateBooking(c.Request.Context(), middleware.IdentityFrom(c), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, verdict)
}

func (h *BookingHandler) ListAppointmentsHandler(c *gin.Context) {
	appts, err := h.Reservations.ListAppointments(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

func (h *BookingHandler) GetAppointmentHandler(c *gin.Context) {
	appt, err := h.Reservations.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *BookingHandler) ListByCustomerHandler(c *gin.Context) {
	appts, err := h.Reservations.ListByCustomer(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

func (h *BookingHandler) ListByDateRangeHandler(c *gin.Context) {
	appts, err := h.Reservations.ListByDateRange(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	var req models.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	appt, err := h.Reservations.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// AssignEmployeesHandler always answers 200 once the assignment is stored; per-employee task
// outcomes are in the body.
func (h *BookingHandler) AssignEmployeesHandler(c *gin.Context) {
	var req models.AssignEmployeesRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.AdminID) == "" {
		req.AdminID = middleware.IdentityFrom(c).SubjectID
	}
	result, err := h.Assignments.Assign(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) RecreateTasksHandler(c *gin.Context) {
	result, err := h.Assignments.RecreateTasks(c.Request.Context(), c.Param("id"), middleware.IdentityFrom(c).SubjectID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RemoveEmployeeHandler is the compensation endpoint staffing calls after a task rejection.
func (h *BookingHandler) RemoveEmployeeHandler(c *gin.Context) {
	var req models.RemoveEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.Compensation.RemoveEmployee(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) CancelAppointmentHandler(c *gin.Context) {
	if err := h.Reservations.CancelAppointment(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "appointment cancelled"})
}

// GET /unavailable-dates?startDate=&endDate= (both optional)
func (h *BookingHandler) ListUnavailableDatesHandler(c *gin.Context) {
	dates, err := h.Calendar.List(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dates)
}

func (h *BookingHandler) AddUnavailableDateHandler(c *gin.Context) {
	var req models.UnavailableDateRequest
	if !bindJSON(c, &req) {
		return
	}
	date, err := h.Calendar.Add(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, date)
}

func (h *BookingHandler) RemoveUnavailableDateHandler(c *gin.Context) {
	if err := h.Calendar.Remove(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unavailable date removed"})
}
