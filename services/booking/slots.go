package booking

import (
	"context"
	"errors"

	timeslotRepo "revamp/database/repository/timeslot"
	"revamp/models"
	"revamp/services/calendar"
)

// AvailableSlots lazily materialises the day's configured windows and returns the free ones.
// A closed date has no slots.
func (s *DefaultReservationService) AvailableSlots(ctx context.Context, date string) ([]models.TimeSlot, error) {
	if _, err := calendar.ParseDate(date); err != nil {
		return nil, ErrInvalidDate
	}
	closed, err := s.Calendar.IsClosed(ctx, date)
	if err != nil {
		return nil, err
	}
	out := []models.TimeSlot{}
	if closed {
		return out, nil
	}
	for _, w := range s.Schedule.Slots {
		slot, err := s.Slots.GetOrCreate(ctx, date, w.Start, w.End)
		if err != nil {
			return nil, err
		}
		if slot.IsAvailable {
			out = append(out, *slot)
		}
	}
	return out, nil
}

func (s *DefaultReservationService) SlotsInRange(ctx context.Context, from, to string) ([]models.TimeSlot, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	return s.Slots.GetByDateRange(ctx, from, to)
}

func (s *DefaultReservationService) GetSlot(ctx context.Context, id string) (*models.TimeSlot, error) {
	slot, err := s.Slots.GetByID(ctx, id)
	if errors.Is(err, timeslotRepo.ErrSlotNotFound) {
		return nil, ErrSlotNotFound
	}
	return slot, err
}
