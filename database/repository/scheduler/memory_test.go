package schedulerRepo_test

import (
	"context"
	"errors"
	"testing"

	schedulerRepo "aarogya/database/repository/scheduler"
	"aarogya/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lockSet(bookingID string, resources []string, date, timeOfDay string) []models.SlotLock {
	locks := make([]models.SlotLock, 0, len(resources))
	for _, r := range resources {
		locks = append(locks, models.NewSlotLock(r, date, timeOfDay, bookingID))
	}
	return locks
}

func TestReserveSlotsReportsOwnerOnConflict(t *testing.T) {
	repo := schedulerRepo.NewMemorySchedulerRepo()
	ctx := context.Background()

	first := &models.Booking{ID: "bk-1", CustomerID: "patient-1"}
	require.NoError(t, repo.ReserveSlots(ctx, first, lockSet("bk-1", []string{"provider-a", "room-1"}, "2024-06-03", "11:00")))

	second := &models.Booking{ID: "bk-2", CustomerID: "patient-2"}
	err := repo.ReserveSlots(ctx, second, lockSet("bk-2", []string{"provider-b", "room-1"}, "2024-06-03", "11:00"))
	require.Error(t, err)

	var taken *schedulerRepo.SlotTakenError
	require.True(t, errors.As(err, &taken))
	assert.Equal(t, "room-1", taken.ResourceID)
	assert.Equal(t, "2024-06-03", taken.Date)
	assert.Equal(t, "11:00", taken.Time)
	assert.Equal(t, "bk-1", taken.OwnerID)

	// The loser's booking was not written either.
	_, err = repo.GetBookingByID(ctx, "bk-2")
	assert.ErrorIs(t, err, schedulerRepo.ErrBookingNotFound)
	assert.Equal(t, 2, repo.LockCount())
}

func TestRescheduleSlotsIgnoresOwnLocks(t *testing.T) {
	repo := schedulerRepo.NewMemorySchedulerRepo()
	ctx := context.Background()

	booking := &models.Booking{ID: "bk-1", CustomerID: "patient-1", Status: models.BookingStatusConfirmed}
	require.NoError(t, repo.ReserveSlots(ctx, booking, lockSet("bk-1", []string{"provider-a"}, "2024-06-03", "11:00")))

	moved := *booking
	moved.Status = models.BookingStatusRescheduled
	err := repo.RescheduleSlots(ctx, &moved, lockSet("bk-1", []string{"provider-a"}, "2024-06-03", "11:00"))
	require.NoError(t, err)
	assert.Equal(t, 1, repo.LockCount())

	stored, err := repo.GetBookingByID(ctx, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusRescheduled, stored.Status)
}

func TestReleaseSlotsClearsLocksAndSetsStatus(t *testing.T) {
	repo := schedulerRepo.NewMemorySchedulerRepo()
	ctx := context.Background()

	booking := &models.Booking{ID: "bk-1", CustomerID: "patient-1", Status: models.BookingStatusConfirmed}
	require.NoError(t, repo.ReserveSlots(ctx, booking, lockSet("bk-1", []string{"provider-a", "room-1"}, "2024-06-03", "11:00")))

	require.NoError(t, repo.ReleaseSlots(ctx, "bk-1", models.BookingStatusCancelled))
	assert.Equal(t, 0, repo.LockCount())

	stored, err := repo.GetBookingByID(ctx, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, stored.Status)

	assert.ErrorIs(t, repo.ReleaseSlots(ctx, "bk-404", models.BookingStatusCancelled), schedulerRepo.ErrBookingNotFound)
}
