package booking_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"aarogya/models"
	"aarogya/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveMultiDayCourse(t *testing.T) {
	svc, repo, _ := newTestEngine()
	ctx := context.Background()

	created, err := seedBooking(svc, "patient-1", "2024-06-03", 3)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, models.BookingStatusConfirmed, created.Status)
	assert.Equal(t, "Abhyang", created.ServiceName)

	// Provider and room locked at 11:00 on every day of the course.
	assert.Equal(t, 6, repo.LockCount())
	for _, date := range []string{"2024-06-03", "2024-06-04", "2024-06-05"} {
		for _, resource := range []string{"provider-vaidya", "room-dhanvantari"} {
			locked, err := repo.SlotLocked(ctx, models.MakeSlotKey(resource, date, "11:00"))
			require.NoError(t, err)
			assert.True(t, locked, "expected %s locked on %s", resource, date)
		}
	}

	found, err := svc.GetBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "patient-1", found.CustomerID)
}

func TestReserveConflictOnOverlappingDay(t *testing.T) {
	svc, repo, _ := newTestEngine()
	ctx := context.Background()

	_, err := seedBooking(svc, "patient-1", "2024-06-03", 3)
	require.NoError(t, err)

	// Day two of the course is taken; a different room does not help because
	// the provider is the shared resource.
	_, err = svc.Reserve(ctx, booking.ReserveRequest{
		CustomerID: "patient-2",
		ServiceID:  "abhyang",
		ProviderID: "provider-vaidya",
		RoomID:     "room-sushruta",
		StartDate:  "2024-06-04",
		Time:       "11:00",
		DayCount:   1,
	})
	require.Error(t, err)
	assert.Equal(t, booking.KindSlotConflict, booking.ErrorKind(err))

	var engineErr *booking.Error
	require.True(t, errors.As(err, &engineErr))
	assert.Equal(t, "provider-vaidya", engineErr.ResourceID)
	assert.Equal(t, "2024-06-04", engineErr.Date)
	assert.Equal(t, "11:00", engineErr.Time)

	// The failed attempt wrote nothing.
	assert.Equal(t, 6, repo.LockCount())
}

func TestReserveFailureIsAllOrNothing(t *testing.T) {
	svc, repo, _ := newTestEngine()
	ctx := context.Background()

	// Day one and two are free for provider-b; day three collides on the room.
	require.NoError(t, occupySlot(repo, "bk-other", []string{"room-dhanvantari"}, "2024-06-05", "11:00"))
	before := repo.LockCount()

	_, err := svc.Reserve(ctx, booking.ReserveRequest{
		CustomerID: "patient-1",
		ServiceID:  "abhyang",
		ProviderID: "provider-b",
		RoomID:     "room-dhanvantari",
		StartDate:  "2024-06-03",
		Time:       "11:00",
		DayCount:   3,
	})
	require.Error(t, err)
	assert.Equal(t, booking.KindSlotConflict, booking.ErrorKind(err))

	// Not even the conflict-free first days were written.
	assert.Equal(t, before, repo.LockCount())
	locked, err := repo.SlotLocked(ctx, models.MakeSlotKey("provider-b", "2024-06-03", "11:00"))
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestReserveConcurrentSingleWinner(t *testing.T) {
	svc, repo, _ := newTestEngine()
	ctx := context.Background()

	const callers = 8
	results := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Reserve(ctx, booking.ReserveRequest{
				CustomerID: fmt.Sprintf("patient-%d", i),
				ServiceID:  "abhyang",
				ProviderID: "provider-vaidya",
				RoomID:     "room-dhanvantari",
				StartDate:  "2024-06-03",
				Time:       "11:00",
				DayCount:   1,
			})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
		} else {
			assert.Equal(t, booking.KindSlotConflict, booking.ErrorKind(err))
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 2, repo.LockCount())
}

func TestReservePendingWhenConfirmationRequired(t *testing.T) {
	svc, _, _ := newTestEngine()

	created, err := svc.Reserve(context.Background(), booking.ReserveRequest{
		CustomerID: "patient-1",
		ServiceID:  "panchakarma",
		ProviderID: "provider-vaidya",
		RoomID:     "room-dhanvantari",
		StartDate:  "2024-06-10",
		Time:       "09:00",
		DayCount:   14,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, created.Status)
}

func TestReserveValidation(t *testing.T) {
	svc, repo, _ := newTestEngine()
	ctx := context.Background()

	base := booking.ReserveRequest{
		CustomerID: "patient-1",
		ServiceID:  "abhyang",
		ProviderID: "provider-vaidya",
		RoomID:     "room-dhanvantari",
		StartDate:  "2024-06-03",
		Time:       "11:00",
		DayCount:   1,
	}

	tests := []struct {
		name     string
		mutate   func(r *booking.ReserveRequest)
		wantKind string
	}{
		{"missing customer", func(r *booking.ReserveRequest) { r.CustomerID = "" }, booking.KindValidation},
		{"separator in provider id", func(r *booking.ReserveRequest) { r.ProviderID = "prov|ider" }, booking.KindValidation},
		{"separator in room id", func(r *booking.ReserveRequest) { r.RoomID = "room|1" }, booking.KindValidation},
		{"off-grid time", func(r *booking.ReserveRequest) { r.Time = "11:30" }, booking.KindValidation},
		{"zero day count", func(r *booking.ReserveRequest) { r.DayCount = 0 }, booking.KindValidation},
		{"day count too large", func(r *booking.ReserveRequest) { r.DayCount = 61 }, booking.KindValidation},
		{"malformed date", func(r *booking.ReserveRequest) { r.StartDate = "03-06-2024" }, booking.KindValidation},
		{"start in the past", func(r *booking.ReserveRequest) { r.StartDate = "2024-05-30" }, booking.KindValidation},
		{"inside the notice window", func(r *booking.ReserveRequest) { r.StartDate = "2024-06-01"; r.Time = "09:00" }, booking.KindValidation},
		{"beyond the booking window", func(r *booking.ReserveRequest) { r.StartDate = "2024-08-15" }, booking.KindValidation},
		{"room cannot host the therapy", func(r *booking.ReserveRequest) { r.RoomID = "room-steam" }, booking.KindValidation},
		{"unknown service", func(r *booking.ReserveRequest) { r.ServiceID = "nope" }, booking.KindNotFound},
		{"inactive service", func(r *booking.ReserveRequest) { r.ServiceID = "shirodhara-old" }, booking.KindNotFound},
		{"unknown room", func(r *booking.ReserveRequest) { r.RoomID = "room-nope" }, booking.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			_, err := svc.Reserve(ctx, req)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, booking.ErrorKind(err))
		})
	}

	// Rejected requests never reach the store.
	assert.Equal(t, 0, repo.LockCount())
}
