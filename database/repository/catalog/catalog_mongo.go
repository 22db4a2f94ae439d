package catalogRepo

import (
	"context"
	"errors"
	"fmt"

	"aarogya/config"
	"aarogya/database"
	"aarogya/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	serviceColl *mongo.Collection
	roomColl    *mongo.Collection
}

// NewMongoCatalogRepo constructs a new instance of MongoCatalogRepo.
func NewMongoCatalogRepo() *MongoCatalogRepo {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoCatalogRepo{
		serviceColl: db.Collection("services"),
		roomColl:    db.Collection("rooms"),
	}
}

// GetService retrieves a service document by ID.
func (repo *MongoCatalogRepo) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	var svc models.Service
	if err := repo.serviceColl.FindOne(ctx, bson.M{"id": serviceID}).Decode(&svc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("error fetching service %s: %w", serviceID, err)
	}
	return &svc, nil
}

// GetRooms retrieves rooms sorted by ID so first-fit allocation downstream
// stays deterministic across calls.
func (repo *MongoCatalogRepo) GetRooms(ctx context.Context, activeOnly bool) ([]models.Room, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cursor, err := repo.roomColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching rooms: %w", err)
	}
	defer cursor.Close(ctx)

	var rooms []models.Room
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("error decoding rooms: %w", err)
	}
	return rooms, nil
}
