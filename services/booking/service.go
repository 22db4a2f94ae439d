package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	catalogRepo "aarogya/database/repository/catalog"
	schedulerRepo "aarogya/database/repository/scheduler"
	"aarogya/models"

	"github.com/go-redis/redis/v8"
)

// defaultOpTimeout bounds Reserve/Reschedule/Cancel so callers can tell
// "slot gone, pick another" from "store is slow, re-check before retrying".
const defaultOpTimeout = 5 * time.Second

// DefaultBookingService is the production implementation of the
// reservation and scheduling engine. Correctness under concurrency is
// delegated entirely to the repository's transactional methods; the
// service holds no in-process locks.
type DefaultBookingService struct {
	Repo       schedulerRepo.SchedulerRepository
	Catalog    catalogRepo.CatalogRepository
	Dispatcher *SideEffectDispatcher

	// Cache, when set, holds availability responses for a short TTL.
	Cache    *redis.Client
	CacheTTL time.Duration

	// Now is overridable for deterministic tests; nil means time.Now.
	Now func() time.Time

	// OpTimeout overrides defaultOpTimeout when positive.
	OpTimeout time.Duration
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) opTimeout() time.Duration {
	if s.OpTimeout > 0 {
		return s.OpTimeout
	}
	return defaultOpTimeout
}

// mapRepoError translates repository failures into the caller-facing
// taxonomy. Context expiry is reported as a timeout: the outcome is
// ambiguous and the caller must re-check state.
func mapRepoError(op string, err error) error {
	var taken *schedulerRepo.SlotTakenError
	if errors.As(err, &taken) {
		return newSlotConflictError(taken)
	}
	if errors.Is(err, schedulerRepo.ErrBookingNotFound) {
		return newNotFoundError("booking not found")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newTimeoutError(op)
	}
	return err
}

// GetBooking returns one booking by ID.
func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.Repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, mapRepoError("get booking", err)
	}
	return booking, nil
}

// GetCustomerBookings returns all bookings created by the customer.
func (s *DefaultBookingService) GetCustomerBookings(ctx context.Context, customerID string) ([]models.Booking, error) {
	if customerID == "" {
		return nil, newValidationError("customerId is required")
	}
	return s.Repo.GetBookingsByCustomer(ctx, customerID)
}

// validResourceID rejects IDs that would break slot key derivation.
func validResourceID(id string) bool {
	return id != "" && !strings.Contains(id, "|")
}

// validSlotTime reports whether t is one of the fixed daily start times.
func validSlotTime(t string) bool {
	for _, st := range models.DailySlotTimes {
		if st == t {
			return true
		}
	}
	return false
}
