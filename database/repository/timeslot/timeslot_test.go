package timeslotRepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func slotDoc(id string, available bool, appointmentID string) bson.D {
	doc := bson.D{
		{Key: "id", Value: id},
		{Key: "date", Value: "2025-03-04"},
		{Key: "start", Value: "08:00"},
		{Key: "end", Value: "11:00"},
		{Key: "isAvailable", Value: available},
	}
	if appointmentID != "" {
		doc = append(doc, bson.E{Key: "appointmentId", Value: appointmentID})
	}
	return doc
}

func TestReserve(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns the post-image on success", func(mt *mtest.T) {
		repo := NewMongoTimeSlotRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: slotDoc("slot-1", false, "appt-1")},
		))

		slot, err := repo.Reserve(context.Background(), "slot-1", "appt-1")
		require.NoError(mt, err)
		assert.False(mt, slot.IsAvailable)
		assert.Equal(mt, "appt-1", slot.AppointmentID)
	})

	mt.Run("taken slot is reported as already booked", func(mt *mtest.T) {
		repo := NewMongoTimeSlotRepo(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, "db.timeslots", mtest.FirstBatch, slotDoc("slot-1", false, "appt-0")),
		)

		_, err := repo.Reserve(context.Background(), "slot-1", "appt-1")
		assert.ErrorIs(mt, err, ErrSlotAlreadyBooked)
	})

	mt.Run("missing slot is reported as not found", func(mt *mtest.T) {
		repo := NewMongoTimeSlotRepo(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, "db.timeslots", mtest.FirstBatch),
		)

		_, err := repo.Reserve(context.Background(), "nope", "appt-1")
		assert.ErrorIs(mt, err, ErrSlotNotFound)
	})

	mt.Run("store failure is wrapped, not classified", func(mt *mtest.T) {
		repo := NewMongoTimeSlotRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 91, Name: "ShutdownInProgress", Message: "shutting down",
		}))

		_, err := repo.Reserve(context.Background(), "slot-1", "appt-1")
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrSlotAlreadyBooked)
		assert.NotErrorIs(mt, err, ErrSlotNotFound)
	})
}

func TestGetOrCreate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("upsert returns the slot", func(mt *mtest.T) {
		repo := NewMongoTimeSlotRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: slotDoc("slot-9", true, "")},
		))

		slot, err := repo.GetOrCreate(context.Background(), "2025-03-04", "08:00", "11:00")
		require.NoError(mt, err)
		assert.Equal(mt, "slot-9", slot.ID)
		assert.True(mt, slot.IsAvailable)
	})

	mt.Run("lost upsert race re-reads the winner", func(mt *mtest.T) {
		repo := NewMongoTimeSlotRepo(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code: 11000, Name: "DuplicateKey", Message: "E11000 duplicate key error",
			}),
			mtest.CreateCursorResponse(0, "db.timeslots", mtest.FirstBatch, slotDoc("slot-winner", true, "")),
		)

		slot, err := repo.GetOrCreate(context.Background(), "2025-03-04", "08:00", "11:00")
		require.NoError(mt, err)
		assert.Equal(mt, "slot-winner", slot.ID)
	})
}

func TestRelease(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown slot is a no-op", func(mt *mtest.T) {
		repo := NewMongoTimeSlotRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0},
		))

		assert.NoError(mt, repo.Release(context.Background(), "ghost", "appt-1"))
	})

	mt.Run("release is conditional on the occupant", func(mt *mtest.T) {
		repo := NewMongoTimeSlotRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1},
		))

		require.NoError(mt, repo.Release(context.Background(), "slot-1", "appt-1"))
		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		filter := started.Command.Lookup("updates").Array().Index(0).Value().Document().Lookup("q").Document()
		assert.Equal(mt, "slot-1", filter.Lookup("id").StringValue())
		assert.Equal(mt, "appt-1", filter.Lookup("appointmentId").StringValue())
	})
}

func TestGetByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("not found", func(mt *mtest.T) {
		repo := NewMongoTimeSlotRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.timeslots", mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), "ghost")
		assert.ErrorIs(mt, err, ErrSlotNotFound)
	})
}
