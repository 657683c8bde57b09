package booking

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableSlots_MaterialisesWindowsOnce(t *testing.T) {
	f := newReservationFixture()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			slots, err := f.svc.AvailableSlots(ctx, tuesday)
			assert.NoError(t, err)
			assert.Len(t, slots, 3)
		}()
	}
	wg.Wait()

	all, err := f.slots.GetByDate(ctx, tuesday)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "08:00", all[0].Start)
	assert.Equal(t, "14:00", all[2].Start)
}

func TestAvailableSlots_HidesBookedSlots(t *testing.T) {
	f := newReservationFixture()
	ctx := context.Background()

	slots, err := f.svc.AvailableSlots(ctx, tuesday)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	_, err = f.svc.CreateAppointment(ctx, alice, serviceInput(tuesday, slots[1].ID))
	require.NoError(t, err)

	slots, err = f.svc.AvailableSlots(ctx, tuesday)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "08:00", slots[0].Start)
	assert.Equal(t, "14:00", slots[1].Start)
}

func TestAvailableSlots_ClosedDates(t *testing.T) {
	f := newReservationFixture("2025-03-05")
	ctx := context.Background()

	slots, err := f.svc.AvailableSlots(ctx, sunday)
	require.NoError(t, err)
	assert.Empty(t, slots)

	slots, err = f.svc.AvailableSlots(ctx, "2025-03-05")
	require.NoError(t, err)
	assert.Empty(t, slots)

	_, err = f.svc.AvailableSlots(ctx, "2025-13-01")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestGetSlot_NotFound(t *testing.T) {
	f := newReservationFixture()
	_, err := f.svc.GetSlot(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}
