package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"revamp/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (r *mongoAppointmentRepo) List(ctx context.Context) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{}, bson.D{{Key: "date", Value: -1}, {Key: "timeSlotStart", Value: 1}})
}

func (r *mongoAppointmentRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"customerId": customerID}, bson.D{{Key: "date", Value: -1}})
}

func (r *mongoAppointmentRepo) ListByDateRange(ctx context.Context, from, to string) ([]models.Appointment, error) {
	return r.find(ctx,
		bson.M{"date": bson.M{"$gte": from, "$lte": to}},
		bson.D{{Key: "date", Value: 1}, {Key: "timeSlotStart", Value: 1}},
	)
}

// FindLatestWithEmployee picks the customer's most recently updated appointment that still lists the employee,
// matched by id or, failing that, by name.
func (r *mongoAppointmentRepo) FindLatestWithEmployee(ctx context.Context, customerID, employeeID, employeeName string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var match bson.A
	if employeeID != "" {
		match = append(match, bson.M{"assignedEmployeeIds": employeeID})
	}
	if employeeName != "" {
		match = append(match, bson.M{"assignedEmployeeNames": employeeName})
	}
	if len(match) == 0 {
		return nil, ErrAppointmentNotFound
	}
	filter := bson.M{"customerId": customerID, "$or": match}
	opts := options.FindOne().SetSort(bson.D{{Key: "updatedAt", Value: -1}})

	var appt models.Appointment
	err := r.coll.FindOne(ctx, filter, opts).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find appointment for customer %s: %w", customerID, err)
	}
	return &appt, nil
}

func (r *mongoAppointmentRepo) find(ctx context.Context, filter bson.M, sort bson.D) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.Appointment{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return out, nil
}
