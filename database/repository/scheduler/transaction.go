package schedulerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aarogya/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// maxTxnAttempts bounds the automatic retry of a transaction body after a
// conflicting concurrent commit. The read phase runs again on every
// attempt, so a genuine conflict is reported with the colliding key named.
const maxTxnAttempts = 3

// ReserveSlots writes the booking record and its full lock set in one
// transaction. Any pre-existing lock key aborts the whole transaction with
// a SlotTakenError; no partial state survives an abort.
func (repo *MongoSchedulerRepo) ReserveSlots(ctx context.Context, booking *models.Booking, locks []models.SlotLock) error {
	return repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		for _, lock := range locks {
			var existing models.SlotLock
			err := repo.slotColl.FindOne(sc, bson.M{"_id": lock.Key}).Decode(&existing)
			if err == nil {
				return &SlotTakenError{
					ResourceID: lock.ResourceID,
					Date:       lock.Date,
					Time:       lock.Time,
					OwnerID:    existing.BookingID,
				}
			}
			if !errors.Is(err, mongo.ErrNoDocuments) {
				return fmt.Errorf("read of slot lock %s failed: %w", lock.Key, err)
			}
		}

		if _, err := repo.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		docs := make([]interface{}, len(locks))
		for i, lock := range locks {
			docs[i] = lock
		}
		if _, err := repo.slotColl.InsertMany(sc, docs); err != nil {
			return fmt.Errorf("insert slot locks failed: %w", err)
		}
		return nil
	})
}

// RescheduleSlots atomically swaps the booking's lock set: every currently
// owned lock is deleted, the new set is inserted and the booking record is
// updated. A new key held by a different booking fails the whole swap.
func (repo *MongoSchedulerRepo) RescheduleSlots(ctx context.Context, updated *models.Booking, newLocks []models.SlotLock) error {
	return repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		for _, lock := range newLocks {
			var existing models.SlotLock
			err := repo.slotColl.FindOne(sc, bson.M{"_id": lock.Key}).Decode(&existing)
			if err == nil && existing.BookingID != updated.ID {
				return &SlotTakenError{
					ResourceID: lock.ResourceID,
					Date:       lock.Date,
					Time:       lock.Time,
					OwnerID:    existing.BookingID,
				}
			}
			if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
				return fmt.Errorf("read of slot lock %s failed: %w", lock.Key, err)
			}
		}

		if _, err := repo.slotColl.DeleteMany(sc, bson.M{"bookingId": updated.ID}); err != nil {
			return fmt.Errorf("release of old slot locks failed: %w", err)
		}
		docs := make([]interface{}, len(newLocks))
		for i, lock := range newLocks {
			docs[i] = lock
		}
		if _, err := repo.slotColl.InsertMany(sc, docs); err != nil {
			return fmt.Errorf("insert of new slot locks failed: %w", err)
		}

		res, err := repo.bookingColl.ReplaceOne(sc, bson.M{"id": updated.ID}, updated)
		if err != nil {
			return fmt.Errorf("update booking failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrBookingNotFound
		}
		return nil
	})
}

// ReleaseSlots deletes every lock owned by the booking and moves the
// booking to the given terminal status in one transaction.
func (repo *MongoSchedulerRepo) ReleaseSlots(ctx context.Context, bookingID, status string) error {
	return repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := repo.slotColl.DeleteMany(sc, bson.M{"bookingId": bookingID}); err != nil {
			return fmt.Errorf("release of slot locks failed: %w", err)
		}
		update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
		res, err := repo.bookingColl.UpdateOne(sc, bson.M{"id": bookingID}, update)
		if err != nil {
			return fmt.Errorf("update booking status failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrBookingNotFound
		}
		return nil
	})
}

// withTransaction runs fn inside a session transaction, retrying a bounded
// number of times when the server reports a transient conflict. Domain
// errors (SlotTakenError, ErrBookingNotFound) abort immediately.
func (repo *MongoSchedulerRepo) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := repo.slotColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var lastErr error
	for attempt := 1; attempt <= maxTxnAttempts; attempt++ {
		err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
			if err := sc.StartTransaction(); err != nil {
				return err
			}
			if err := fn(sc); err != nil {
				_ = sc.AbortTransaction(sc)
				return err
			}
			return sc.CommitTransaction(sc)
		})
		if err == nil {
			return nil
		}
		lastErr = err
		if !isTransientTxnError(err) {
			return err
		}
	}
	return fmt.Errorf("transaction failed after %d attempts: %w", maxTxnAttempts, lastErr)
}

// isTransientTxnError reports whether the failed attempt may succeed (or
// surface a properly named conflict) when the read phase runs again.
func isTransientTxnError(err error) bool {
	if mongo.IsDuplicateKeyError(err) {
		// Lost a race between our read phase and commit; the retry's read
		// phase will name the conflicting slot.
		return true
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.HasErrorLabel("TransientTransactionError") ||
			cmdErr.HasErrorLabel("UnknownTransactionCommitResult")
	}
	return false
}
