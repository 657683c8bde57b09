package calendar

import (
	"testing"
	"time"

	"revamp/config"
	"revamp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleFromConfig(t *testing.T) {
	s, err := ScheduleFromConfig(config.Config{
		ClosureWeekday: "saturday",
		ShopOpen:       "07:30",
		ServiceSlots:   "07:30-10:00, 10:00-12:30",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Saturday, s.ClosureWeekday)
	assert.Equal(t, "07:30", s.Open)
	assert.Equal(t, "17:00", s.Close)
	assert.Equal(t, []models.SlotWindow{{Start: "07:30", End: "10:00"}, {Start: "10:00", End: "12:30"}}, s.Slots)
}

func TestScheduleFromConfigRejectsBadValues(t *testing.T) {
	_, err := ScheduleFromConfig(config.Config{ClosureWeekday: "Someday"})
	assert.Error(t, err)

	_, err = ScheduleFromConfig(config.Config{ServiceSlots: "11:00-08:00"})
	assert.Error(t, err)

	_, err = ScheduleFromConfig(config.Config{TaskDueTime: "5pm"})
	assert.Error(t, err)
}

func TestDueAt(t *testing.T) {
	due, err := DefaultSchedule().DueAt("2025-03-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 4, 17, 0, 0, 0, time.UTC), due)
}
