package calendar

import (
	"fmt"
	"strings"
	"time"

	"revamp/config"
	"revamp/models"
)

// Schedule is the shop's fixed weekly calendar.
type Schedule struct {
	ClosureWeekday time.Weekday
	Open           string
	Close          string
	Slots          []models.SlotWindow
	TaskDueTime    string
}

// DefaultSchedule is the shop's standard week: closed Sundays, 08:00 to 17:00, three service windows.
func DefaultSchedule() Schedule {
	return Schedule{
		ClosureWeekday: time.Sunday,
		Open:           "08:00",
		Close:          "17:00",
		Slots: []models.SlotWindow{
			{Start: "08:00", End: "11:00"},
			{Start: "11:00", End: "14:00"},
			{Start: "14:00", End: "17:00"},
		},
		TaskDueTime: "17:00",
	}
}

// ScheduleFromConfig builds the schedule from loaded configuration, falling back to defaults for empty keys.
func ScheduleFromConfig(cfg config.Config) (Schedule, error) {
	s := DefaultSchedule()
	if cfg.ClosureWeekday != "" {
		wd, err := ParseWeekday(cfg.ClosureWeekday)
		if err != nil {
			return s, err
		}
		s.ClosureWeekday = wd
	}
	for _, pair := range []struct {
		dst *string
		val string
	}{{&s.Open, cfg.ShopOpen}, {&s.Close, cfg.ShopClose}, {&s.TaskDueTime, cfg.TaskDueTime}} {
		if pair.val == "" {
			continue
		}
		if _, err := time.Parse(models.ClockLayout, pair.val); err != nil {
			return s, fmt.Errorf("invalid clock time %q: %w", pair.val, err)
		}
		*pair.dst = pair.val
	}
	if cfg.ServiceSlots != "" {
		slots, err := ParseSlotWindows(cfg.ServiceSlots)
		if err != nil {
			return s, err
		}
		s.Slots = slots
	}
	return s, nil
}

func ParseWeekday(raw string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(raw)) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", raw)
}

// ParseSlotWindows parses "08:00-11:00,11:00-14:00".
func ParseSlotWindows(raw string) ([]models.SlotWindow, error) {
	var out []models.SlotWindow
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		bounds := strings.SplitN(part, "-", 2)
		if len(bounds) != 2 {
			return nil, fmt.Errorf("invalid slot window %q", part)
		}
		w := models.SlotWindow{Start: strings.TrimSpace(bounds[0]), End: strings.TrimSpace(bounds[1])}
		if w.Duration() <= 0 {
			return nil, fmt.Errorf("invalid slot window %q", part)
		}
		out = append(out, w)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no slot windows in %q", raw)
	}
	return out, nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(raw string) (time.Time, error) {
	return time.Parse(models.DateLayout, strings.TrimSpace(raw))
}

// IsWeeklyClosure reports whether date falls on the closure weekday.
func (s Schedule) IsWeeklyClosure(date time.Time) bool {
	return date.Weekday() == s.ClosureWeekday
}

// WindowFor returns the configured window that starts at start.
func (s Schedule) WindowFor(start string) (models.SlotWindow, bool) {
	for _, w := range s.Slots {
		if w.Start == start {
			return w, true
		}
	}
	return models.SlotWindow{}, false
}

// DueAt is the end-of-day deadline used for tasks derived from an appointment on date.
func (s Schedule) DueAt(date string) (time.Time, error) {
	return time.Parse(models.DateLayout+" "+models.ClockLayout, date+" "+s.TaskDueTime)
}
