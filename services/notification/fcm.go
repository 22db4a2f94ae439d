package notification

import (
	"context"
	"errors"
	"fmt"

	"aarogya/config"
	"aarogya/database"
	"aarogya/utils"

	"firebase.google.com/go/v4/messaging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// FCMNotificationService is the production implementation: it looks up the
// patient's device token and sends a push through Firebase Cloud Messaging.
type FCMNotificationService struct {
	patientColl *mongo.Collection
}

// NewFCMNotificationService constructs the FCM-backed service. Patient
// profiles (including device tokens) are written by the portal frontend
// and only read here.
func NewFCMNotificationService() *FCMNotificationService {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &FCMNotificationService{
		patientColl: db.Collection("patients"),
	}
}

// SendPush looks up the patient's FCM token and sends a push.
func (s *FCMNotificationService) SendPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	var patient struct {
		FCMToken string `bson:"fcmToken"`
	}
	err := s.patientColl.FindOne(ctx, bson.M{"id": userID}).Decode(&patient)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("SendPush: patient %s not found", userID)
		}
		return fmt.Errorf("SendPush: could not load patient %s: %w", userID, err)
	}
	if patient.FCMToken == "" {
		return fmt.Errorf("SendPush: patient %s has no FCM token", userID)
	}

	msg := &messaging.Message{
		Token: patient.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendPush: failed to send FCM message: %w", err)
	}
	return nil
}
