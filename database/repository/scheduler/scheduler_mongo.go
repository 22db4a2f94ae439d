package schedulerRepo

import (
	"context"
	"errors"
	"fmt"

	"aarogya/config"
	"aarogya/database"
	"aarogya/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoSchedulerRepo implements SchedulerRepository using MongoDB. Slot
// locks use the SlotKey as document _id, so uniqueness is enforced by the
// store itself.
type MongoSchedulerRepo struct {
	slotColl    *mongo.Collection
	bookingColl *mongo.Collection
}

// NewMongoSchedulerRepo constructs a new instance of MongoSchedulerRepo.
func NewMongoSchedulerRepo() *MongoSchedulerRepo {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoSchedulerRepo{
		slotColl:    db.Collection("slot_locks"),
		bookingColl: db.Collection("bookings"),
	}
}

// SlotLocked reports whether a lock document exists for the given key.
func (repo *MongoSchedulerRepo) SlotLocked(ctx context.Context, key string) (bool, error) {
	err := repo.slotColl.FindOne(ctx, bson.M{"_id": key}).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, fmt.Errorf("error checking slot lock %s: %w", key, err)
}

// LocksForBooking returns every lock owned by the booking.
func (repo *MongoSchedulerRepo) LocksForBooking(ctx context.Context, bookingID string) ([]models.SlotLock, error) {
	cursor, err := repo.slotColl.Find(ctx, bson.M{"bookingId": bookingID})
	if err != nil {
		return nil, fmt.Errorf("error fetching locks for booking %s: %w", bookingID, err)
	}
	defer cursor.Close(ctx)

	var locks []models.SlotLock
	if err := cursor.All(ctx, &locks); err != nil {
		return nil, fmt.Errorf("error decoding locks for booking %s: %w", bookingID, err)
	}
	return locks, nil
}

// GetBookingByID retrieves a booking document by ID.
func (repo *MongoSchedulerRepo) GetBookingByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	if err := repo.bookingColl.FindOne(ctx, bson.M{"id": bookingID}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

// GetBookingsByCustomer retrieves all bookings created by a customer.
func (repo *MongoSchedulerRepo) GetBookingsByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	cursor, err := repo.bookingColl.Find(ctx, bson.M{"customer_id": customerID})
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings for customer %s: %w", customerID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings for customer %s: %w", customerID, err)
	}
	return bookings, nil
}

// EnsureIndexes creates the secondary indexes the repository queries rely on.
// The slot lock primary key needs nothing: _id is unique by construction.
func (repo *MongoSchedulerRepo) EnsureIndexes(ctx context.Context) error {
	if _, err := repo.slotColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "bookingId", Value: 1}},
	}); err != nil {
		return fmt.Errorf("failed to create slot_locks index: %w", err)
	}
	if _, err := repo.bookingColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create bookings indexes: %w", err)
	}
	return nil
}
