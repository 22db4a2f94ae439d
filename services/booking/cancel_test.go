package booking_test

import (
	"context"
	"testing"

	"aarogya/models"
	"aarogya/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancelReleasesEveryLock(t *testing.T) {
	svc, repo, _ := newTestEngine()
	ctx := context.Background()

	created, err := seedBooking(svc, "patient-1", "2024-06-03", 3)
	require.NoError(t, err)
	require.Equal(t, 6, repo.LockCount())

	require.NoError(t, svc.Cancel(ctx, created.ID, "patient-1"))

	assert.Equal(t, 0, repo.LockCount())

	// The booking record stays, marked cancelled.
	found, err := svc.GetBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, found.Status)

	// The slots are immediately reusable.
	_, err = seedBooking(svc, "patient-2", "2024-06-03", 3)
	assert.NoError(t, err)
}

func TestCancelErrors(t *testing.T) {
	svc, _, _ := newTestEngine()
	ctx := context.Background()

	created, err := seedBooking(svc, "patient-1", "2024-06-03", 1)
	require.NoError(t, err)

	t.Run("foreign booking reads as not found", func(t *testing.T) {
		assert.Equal(t, booking.KindNotFound, booking.ErrorKind(svc.Cancel(ctx, created.ID, "patient-2")))
	})

	t.Run("unknown booking", func(t *testing.T) {
		assert.Equal(t, booking.KindNotFound, booking.ErrorKind(svc.Cancel(ctx, "nope", "patient-1")))
	})

	t.Run("already cancelled", func(t *testing.T) {
		require.NoError(t, svc.Cancel(ctx, created.ID, "patient-1"))
		assert.Equal(t, booking.KindValidation, booking.ErrorKind(svc.Cancel(ctx, created.ID, "patient-1")))
	})

	t.Run("missing booking id", func(t *testing.T) {
		assert.Equal(t, booking.KindValidation, booking.ErrorKind(svc.Cancel(ctx, "", "patient-1")))
	})
}
