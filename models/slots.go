package models

import "time"

// Date and clock layouts used for every stored date/time string.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// TimeSlot is a bookable service window on a given date. At most one appointment can own it.
type TimeSlot struct {
	ID            string    `bson:"id" json:"id"`
	Date          string    `bson:"date" json:"date"`   // e.g. "2025-02-25"
	Start         string    `bson:"start" json:"start"` // e.g. "08:00"
	End           string    `bson:"end" json:"end"`     // e.g. "11:00"
	IsAvailable   bool      `bson:"isAvailable" json:"isAvailable"`
	AppointmentID string    `bson:"appointmentId,omitempty" json:"appointmentId,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SlotWindow is a configured start/end pair for the daily service schedule.
type SlotWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Duration returns the window length, or zero when either bound is malformed.
func (w SlotWindow) Duration() time.Duration {
	start, err := time.Parse(ClockLayout, w.Start)
	if err != nil {
		return 0
	}
	end, err := time.Parse(ClockLayout, w.End)
	if err != nil || end.Before(start) {
		return 0
	}
	return end.Sub(start)
}
