package schedulerRepo

import (
	"context"
	"sync"

	"aarogya/models"
)

// MemorySchedulerRepo is a mutex-guarded in-process implementation of
// SchedulerRepository. It backs single-node deployments that run without
// MongoDB and keeps the engine's tests deterministic. Every transactional
// method validates all of its reads and applies all of its writes under
// one critical section, which gives the same all-or-nothing guarantee the
// Mongo implementation gets from sessions.
type MemorySchedulerRepo struct {
	mu       sync.Mutex
	locks    map[string]models.SlotLock
	bookings map[string]models.Booking
}

// NewMemorySchedulerRepo constructs an empty in-memory repository.
func NewMemorySchedulerRepo() *MemorySchedulerRepo {
	return &MemorySchedulerRepo{
		locks:    make(map[string]models.SlotLock),
		bookings: make(map[string]models.Booking),
	}
}

func (repo *MemorySchedulerRepo) SlotLocked(ctx context.Context, key string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	_, ok := repo.locks[key]
	return ok, nil
}

func (repo *MemorySchedulerRepo) LocksForBooking(ctx context.Context, bookingID string) ([]models.SlotLock, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var out []models.SlotLock
	for _, lock := range repo.locks {
		if lock.BookingID == bookingID {
			out = append(out, lock)
		}
	}
	return out, nil
}

func (repo *MemorySchedulerRepo) GetBookingByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	booking, ok := repo.bookings[bookingID]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return &booking, nil
}

func (repo *MemorySchedulerRepo) GetBookingsByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var out []models.Booking
	for _, booking := range repo.bookings {
		if booking.CustomerID == customerID {
			out = append(out, booking)
		}
	}
	return out, nil
}

func (repo *MemorySchedulerRepo) ReserveSlots(ctx context.Context, booking *models.Booking, locks []models.SlotLock) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, lock := range locks {
		if existing, ok := repo.locks[lock.Key]; ok {
			return &SlotTakenError{
				ResourceID: lock.ResourceID,
				Date:       lock.Date,
				Time:       lock.Time,
				OwnerID:    existing.BookingID,
			}
		}
	}
	repo.bookings[booking.ID] = *booking
	for _, lock := range locks {
		repo.locks[lock.Key] = lock
	}
	return nil
}

func (repo *MemorySchedulerRepo) RescheduleSlots(ctx context.Context, updated *models.Booking, newLocks []models.SlotLock) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.bookings[updated.ID]; !ok {
		return ErrBookingNotFound
	}
	for _, lock := range newLocks {
		if existing, ok := repo.locks[lock.Key]; ok && existing.BookingID != updated.ID {
			return &SlotTakenError{
				ResourceID: lock.ResourceID,
				Date:       lock.Date,
				Time:       lock.Time,
				OwnerID:    existing.BookingID,
			}
		}
	}
	for key, lock := range repo.locks {
		if lock.BookingID == updated.ID {
			delete(repo.locks, key)
		}
	}
	for _, lock := range newLocks {
		repo.locks[lock.Key] = lock
	}
	repo.bookings[updated.ID] = *updated
	return nil
}

func (repo *MemorySchedulerRepo) ReleaseSlots(ctx context.Context, bookingID, status string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	booking, ok := repo.bookings[bookingID]
	if !ok {
		return ErrBookingNotFound
	}
	for key, lock := range repo.locks {
		if lock.BookingID == bookingID {
			delete(repo.locks, key)
		}
	}
	booking.Status = status
	repo.bookings[bookingID] = booking
	return nil
}

// LockCount reports how many slot locks are currently held. Used by tests
// asserting that failed reservations leave nothing behind.
func (repo *MemorySchedulerRepo) LockCount() int {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return len(repo.locks)
}
