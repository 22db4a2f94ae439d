package schedulerRepo

import (
	"aarogya/models"
	"context"
)

// SchedulerRepository persists bookings and the slot locks they own. The
// three *Slots methods are transactional: each either applies all of its
// writes or none, and concurrent conflicting commits lose with a
// SlotTakenError rather than partially applying.
type SchedulerRepository interface {
	SlotLocked(ctx context.Context, key string) (bool, error)
	LocksForBooking(ctx context.Context, bookingID string) ([]models.SlotLock, error)

	GetBookingByID(ctx context.Context, bookingID string) (*models.Booking, error)
	GetBookingsByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)

	// ReserveSlots writes the booking and all of its locks, failing with
	// SlotTakenError if any lock key already exists.
	ReserveSlots(ctx context.Context, booking *models.Booking, locks []models.SlotLock) error

	// RescheduleSlots releases every lock currently owned by the booking,
	// acquires the new set and updates the booking record, atomically.
	// Keys held by a different booking fail the whole operation.
	RescheduleSlots(ctx context.Context, updated *models.Booking, newLocks []models.SlotLock) error

	// ReleaseSlots deletes all locks owned by the booking and moves it to
	// the given terminal status.
	ReleaseSlots(ctx context.Context, bookingID, status string) error
}
