package recordsRepo

import (
	"aarogya/config"
	"aarogya/database"
	"aarogya/models"
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

type TherapyRecordRepository interface {
	Create(ctx context.Context, record models.TherapyRecord) (string, error)
	GetByID(ctx context.Context, id string) (*models.TherapyRecord, error)
	GetByBookingID(ctx context.Context, bookingID string) (*models.TherapyRecord, error)
	GetByCustomerID(ctx context.Context, customerID string) ([]models.TherapyRecord, error)
}

type mongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo returns a new TherapyRecordRepository instance using MongoDB.
func NewMongoRecordRepo() TherapyRecordRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoRecordRepo{
		coll: db.Collection("therapy_records"),
	}
}
