package recordsRepo

import (
	"aarogya/models"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrRecordNotFound is returned when no therapy record matches the lookup.
var ErrRecordNotFound = errors.New("therapy record not found")

// Create inserts a new therapy record and returns its ID.
func (r *mongoRecordRepo) Create(ctx context.Context, record models.TherapyRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, record)
	if err != nil {
		return "", err
	}
	return record.ID, nil
}

// GetByID returns a therapy record by its ID.
func (r *mongoRecordRepo) GetByID(ctx context.Context, id string) (*models.TherapyRecord, error) {
	var record models.TherapyRecord
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

// GetByBookingID returns the record seeded for a booking, if any.
func (r *mongoRecordRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.TherapyRecord, error) {
	var record models.TherapyRecord
	err := r.coll.FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

// GetByCustomerID fetches all records belonging to a patient.
func (r *mongoRecordRepo) GetByCustomerID(ctx context.Context, customerID string) ([]models.TherapyRecord, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"customerId": customerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.TherapyRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
