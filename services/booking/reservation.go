package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	appointmentRepo "revamp/database/repository/appointment"
	timeslotRepo "revamp/database/repository/timeslot"
	"revamp/models"
	"revamp/services/calendar"
	"revamp/utils"

	"go.uber.org/zap"
)

// DefaultReservationService creates appointments. The slot record, not this service,
// decides who owns a slot: Reserve is the only write that takes one.
type DefaultReservationService struct {
	Slots        timeslotRepo.TimeSlotRepository
	Appointments appointmentRepo.AppointmentRepository
	Calendar     calendar.Oracle
	Schedule     calendar.Schedule
	Logger       *zap.Logger
}

// bookingPlan is the outcome of the read-only checks that precede any write.
type bookingPlan struct {
	serviceType string
	date        string
	slot        *models.TimeSlot
	start, end  string
}

func (s *DefaultReservationService) CreateAppointment(ctx context.Context, identity models.Identity, in models.CreateAppointmentInput) (*models.Appointment, error) {
	logger := utils.LoggerOr(s.Logger)

	plan, err := s.plan(ctx, identity, in)
	if err != nil {
		return nil, err
	}
	if plan.slot != nil && !plan.slot.IsAvailable {
		return nil, ErrSlotConflict
	}

	appt := &models.Appointment{
		CustomerID:            identity.SubjectID,
		CustomerName:          identity.DisplayName,
		CustomerEmail:         identity.Email,
		VehicleID:             in.VehicleID,
		Vehicle:               in.Vehicle,
		VehicleDetails:        in.VehicleDetails,
		ServiceType:           plan.serviceType,
		Date:                  plan.date,
		TimeSlotStart:         plan.start,
		TimeSlotEnd:           plan.end,
		Status:                models.StatusPending,
		AssignedEmployeeIDs:   []string{},
		AssignedEmployeeNames: []string{},
		Modifications:         in.Modifications,
		EstimatedCost:         in.EstimatedCost,
		EstimatedTimeHours:    in.EstimatedTimeHours,
		Instructions:          in.Instructions,
	}
	if plan.slot != nil {
		appt.TimeSlotID = plan.slot.ID
	}
	s.warnIncomplete(appt)

	if err := s.Appointments.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	if plan.slot == nil {
		logger.Info("modification appointment created", zap.String("appointmentId", appt.ID), zap.String("date", appt.Date))
		return appt, nil
	}

	reserved, err := s.Slots.Reserve(ctx, plan.slot.ID, appt.ID)
	if err != nil {
		s.discard(ctx, appt.ID)
		switch {
		case errors.Is(err, timeslotRepo.ErrSlotAlreadyBooked):
			logger.Info("slot lost to a concurrent booking", zap.String("slotId", plan.slot.ID), zap.String("customerId", appt.CustomerID))
			return nil, ErrSlotConflict
		case errors.Is(err, timeslotRepo.ErrSlotNotFound):
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("reserve slot: %w", err)
	}
	if reserved.Date != appt.Date {
		if err := s.Slots.Release(ctx, reserved.ID, appt.ID); err != nil {
			logger.Error("failed to release mismatched slot", zap.String("slotId", reserved.ID), zap.Error(err))
		}
		s.discard(ctx, appt.ID)
		return nil, ErrSlotDateMismatch
	}

	logger.Info("service appointment booked",
		zap.String("appointmentId", appt.ID),
		zap.String("slotId", reserved.ID),
		zap.String("date", appt.Date),
		zap.String("start", appt.TimeSlotStart),
	)
	return appt, nil
}

// ValidateBooking runs every creation rule without writing anything.
func (s *DefaultReservationService) ValidateBooking(ctx context.Context, identity models.Identity, in models.CreateAppointmentInput) (*models.BookingValidation, error) {
	plan, err := s.plan(ctx, identity, in)
	if err == nil && plan.slot != nil && !plan.slot.IsAvailable {
		err = ErrSlotConflict
	}
	if err != nil {
		de, ok := models.AsDomainError(err)
		if !ok {
			return nil, err
		}
		return &models.BookingValidation{Valid: false, Code: de.Code, Message: de.Message}, nil
	}
	return &models.BookingValidation{Valid: true, Message: "booking is valid"}, nil
}

// plan applies the creation rules in order; the first failing rule wins.
func (s *DefaultReservationService) plan(ctx context.Context, identity models.Identity, in models.CreateAppointmentInput) (*bookingPlan, error) {
	date := strings.TrimSpace(in.Date)
	if _, err := calendar.ParseDate(date); err != nil {
		return nil, ErrInvalidDate
	}

	unavailable, err := s.Calendar.IsUnavailable(ctx, date)
	if err != nil {
		return nil, err
	}
	if unavailable {
		return nil, ErrDateUnavailable
	}
	if s.Calendar.IsWeeklyClosure(date) {
		return nil, ErrWeeklyClosure
	}
	serviceType, ok := models.NormalizeServiceType(in.ServiceType)
	if !ok {
		return nil, ErrInvalidServiceType
	}
	if strings.TrimSpace(identity.SubjectID) == "" {
		return nil, ErrCustomerIdentityMissing
	}

	plan := &bookingPlan{serviceType: serviceType, date: date}
	if serviceType == models.ServiceTypeModification {
		start := s.Schedule.Open
		if in.TimeSlotStart != "" {
			start = in.TimeSlotStart
		}
		if !withinHours(start, s.Schedule.Open, s.Schedule.Close) {
			return nil, ErrInvalidTime
		}
		plan.start, plan.end = start, s.Schedule.Close
		return plan, nil
	}

	if strings.TrimSpace(in.TimeSlotID) == "" {
		return nil, ErrMissingSlot
	}
	slot, err := s.Slots.GetByID(ctx, in.TimeSlotID)
	if errors.Is(err, timeslotRepo.ErrSlotNotFound) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read slot: %w", err)
	}
	if slot.Date != date {
		return nil, ErrSlotDateMismatch
	}
	plan.slot = slot
	plan.start, plan.end = slot.Start, slot.End
	return plan, nil
}

func withinHours(start, open, closing string) bool {
	t, err := time.Parse(models.ClockLayout, start)
	if err != nil {
		return false
	}
	o, err1 := time.Parse(models.ClockLayout, open)
	c, err2 := time.Parse(models.ClockLayout, closing)
	if err1 != nil || err2 != nil {
		return false
	}
	return !t.Before(o) && t.Before(c)
}

// discard removes an appointment whose slot could not be taken.
func (s *DefaultReservationService) discard(ctx context.Context, appointmentID string) {
	if err := s.Appointments.Delete(ctx, appointmentID); err != nil && !errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		utils.LoggerOr(s.Logger).Error("failed to delete appointment after lost reservation",
			zap.String("appointmentId", appointmentID), zap.Error(err))
	}
}

func (s *DefaultReservationService) warnIncomplete(appt *models.Appointment) {
	var missing []string
	if appt.CustomerEmail == "" {
		missing = append(missing, "customerEmail")
	}
	if appt.VehicleID == "" && appt.Vehicle == "" && appt.VehicleDetails.IsEmpty() {
		missing = append(missing, "vehicle")
	}
	if len(missing) > 0 {
		utils.LoggerOr(s.Logger).Warn("appointment has incomplete data",
			zap.String("customerId", appt.CustomerID), zap.Strings("missing", missing))
	}
}

// CancelAppointment frees the slot this appointment holds and then deletes the appointment.
// A slot already re-booked by another appointment is left alone.
func (s *DefaultReservationService) CancelAppointment(ctx context.Context, id string) error {
	appt, err := s.GetAppointment(ctx, id)
	if err != nil {
		return err
	}
	if appt.TimeSlotID != "" {
		if err := s.Slots.Release(ctx, appt.TimeSlotID, appt.ID); err != nil {
			return fmt.Errorf("release slot: %w", err)
		}
	}
	if err := s.Appointments.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		return err
	}
	utils.LoggerOr(s.Logger).Info("appointment cancelled", zap.String("appointmentId", id), zap.String("slotId", appt.TimeSlotID))
	return nil
}

func (s *DefaultReservationService) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, id)
	if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		return nil, ErrAppointmentNotFound
	}
	return appt, err
}

func (s *DefaultReservationService) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	return s.Appointments.List(ctx)
}

func (s *DefaultReservationService) ListByCustomer(ctx context.Context, customerID string) ([]models.Appointment, error) {
	return s.Appointments.ListByCustomer(ctx, customerID)
}

func (s *DefaultReservationService) ListByDateRange(ctx context.Context, from, to string) ([]models.Appointment, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	return s.Appointments.ListByDateRange(ctx, from, to)
}

// UpdateStatus moves an appointment forward by exactly one step. Re-sending the current status is a no-op.
func (s *DefaultReservationService) UpdateStatus(ctx context.Context, id, status string) (*models.Appointment, error) {
	next := canonicalStatus(status)
	if next == "" {
		return nil, ErrInvalidStatus
	}
	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		appt, err := s.GetAppointment(ctx, id)
		if err != nil {
			return nil, err
		}
		cur, want := models.StatusRank(appt.Status), models.StatusRank(next)
		if want == cur {
			return appt, nil
		}
		if want != cur+1 {
			return nil, ErrInvalidStatusTransition.WithMessage("cannot move appointment from %s to %s", appt.Status, next)
		}
		updated, err := s.Appointments.UpdateStatus(ctx, id, appt.Version, next)
		if errors.Is(err, appointmentRepo.ErrVersionConflict) {
			continue
		}
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		if err != nil {
			return nil, err
		}
		utils.LoggerOr(s.Logger).Info("appointment status updated",
			zap.String("appointmentId", id), zap.String("from", appt.Status), zap.String("to", next))
		return updated, nil
	}
	return nil, ErrConcurrentUpdate
}

func canonicalStatus(raw string) string {
	for _, s := range models.AppointmentStatusOrder {
		if strings.EqualFold(s, strings.TrimSpace(raw)) {
			return s
		}
	}
	return ""
}

func validateRange(from, to string) error {
	f, err := calendar.ParseDate(from)
	if err != nil {
		return ErrInvalidDate
	}
	t, err := calendar.ParseDate(to)
	if err != nil {
		return ErrInvalidDate
	}
	if f.After(t) {
		return ErrInvalidDateRange
	}
	return nil
}
