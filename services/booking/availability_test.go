package booking_test

import (
	"context"
	"testing"

	"aarogya/models"
	"aarogya/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func availabilityOn(t *testing.T, svc *booking.DefaultBookingService, serviceID, date string) []models.AvailableSlot {
	t.Helper()
	slots, err := svc.ComputeAvailability(context.Background(), booking.AvailabilityRequest{
		ServiceID: serviceID,
		Date:      date,
	})
	require.NoError(t, err)
	return slots
}

func slotTimes(slots []models.AvailableSlot) []string {
	times := make([]string, 0, len(slots))
	for _, s := range slots {
		times = append(times, s.Time)
	}
	return times
}

func TestAvailabilityAdvanceNoticeCutoff(t *testing.T) {
	svc, _, _ := newTestEngine()

	// At 08:00 with 2 hours notice, nothing before 11:00 is offered today.
	slots := availabilityOn(t, svc, "abhyang", "2024-06-01")
	require.NotEmpty(t, slots)

	assert.Equal(t, "11:00", slots[0].Time)
	assert.Equal(t,
		[]string{"11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00", "18:00"},
		slotTimes(slots),
	)
	for _, s := range slots {
		assert.Equal(t, "room-dhanvantari", s.RoomID, "first-fit assigns the first compatible room when all are free")
	}
}

func TestAvailabilityFutureDateOffersFullDay(t *testing.T) {
	svc, _, _ := newTestEngine()

	slots := availabilityOn(t, svc, "abhyang", "2024-06-03")
	assert.Equal(t, models.DailySlotTimes, slotTimes(slots))
}

func TestAvailabilityFirstFitFallsToNextRoom(t *testing.T) {
	svc, repo, _ := newTestEngine()

	// Another booking holds the first room at 12:00; the provider is free.
	require.NoError(t, occupySlot(repo, "bk-other", []string{"provider-other", "room-dhanvantari"}, "2024-06-03", "12:00"))

	slots := availabilityOn(t, svc, "abhyang", "2024-06-03")
	byTime := make(map[string]string)
	for _, s := range slots {
		byTime[s.Time] = s.RoomID
	}
	assert.Equal(t, "room-sushruta", byTime["12:00"])
	assert.Equal(t, "room-dhanvantari", byTime["11:00"])
}

func TestAvailabilityOmitsSlotWhenProviderBusy(t *testing.T) {
	svc, repo, _ := newTestEngine()

	require.NoError(t, occupySlot(repo, "bk-other", []string{"provider-vaidya"}, "2024-06-03", "13:00"))

	slots := availabilityOn(t, svc, "abhyang", "2024-06-03")
	assert.NotContains(t, slotTimes(slots), "13:00")
}

func TestAvailabilityOmitsSlotWhenAllRoomsBusy(t *testing.T) {
	svc, repo, _ := newTestEngine()

	require.NoError(t, occupySlot(repo, "bk-one", []string{"room-dhanvantari"}, "2024-06-03", "14:00"))
	require.NoError(t, occupySlot(repo, "bk-two", []string{"room-sushruta"}, "2024-06-03", "14:00"))

	slots := availabilityOn(t, svc, "abhyang", "2024-06-03")
	assert.NotContains(t, slotTimes(slots), "14:00")
}

func TestAvailabilityDeterministic(t *testing.T) {
	svc, _, _ := newTestEngine()

	first := availabilityOn(t, svc, "abhyang", "2024-06-03")
	second := availabilityOn(t, svc, "abhyang", "2024-06-03")
	assert.Equal(t, first, second)
}

func TestAvailabilityWorkingHours(t *testing.T) {
	svc, _, catalog := newTestEngine()
	catalog.PutService(models.Service{
		ID:                "nasya",
		Name:              "Nasya",
		DefaultProviderID: "provider-vaidya",
		WorkingHours: map[string]models.DayWindow{
			"monday": {Start: "09:00", End: "12:00"},
		},
		Active: true,
	})

	// Nasya needs a room; widen the second room's therapies for this case.
	catalog.PutRoom(models.Room{ID: "room-sushruta", SupportedTherapies: []string{models.RoomSupportsAll}, Active: true})

	// 2024-06-03 is a Monday.
	slots := availabilityOn(t, svc, "nasya", "2024-06-03")
	assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00"}, slotTimes(slots))

	// No window configured for Tuesday means closed.
	assert.Empty(t, availabilityOn(t, svc, "nasya", "2024-06-04"))
}

func TestAvailabilityEmptyResults(t *testing.T) {
	svc, _, _ := newTestEngine()

	t.Run("no compatible room", func(t *testing.T) {
		assert.Empty(t, availabilityOn(t, svc, "vamana", "2024-06-03"))
	})

	t.Run("beyond the advance-booking window", func(t *testing.T) {
		assert.Empty(t, availabilityOn(t, svc, "abhyang", "2024-08-15"))
	})
}

func TestAvailabilityErrors(t *testing.T) {
	svc, _, _ := newTestEngine()
	ctx := context.Background()

	t.Run("unknown service", func(t *testing.T) {
		_, err := svc.ComputeAvailability(ctx, booking.AvailabilityRequest{ServiceID: "nope", Date: "2024-06-03"})
		assert.Equal(t, booking.KindNotFound, booking.ErrorKind(err))
	})

	t.Run("inactive service", func(t *testing.T) {
		_, err := svc.ComputeAvailability(ctx, booking.AvailabilityRequest{ServiceID: "shirodhara-old", Date: "2024-06-03"})
		assert.Equal(t, booking.KindNotFound, booking.ErrorKind(err))
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := svc.ComputeAvailability(ctx, booking.AvailabilityRequest{ServiceID: "abhyang", Date: "03/06/2024"})
		assert.Equal(t, booking.KindValidation, booking.ErrorKind(err))
	})

	t.Run("missing service id", func(t *testing.T) {
		_, err := svc.ComputeAvailability(ctx, booking.AvailabilityRequest{Date: "2024-06-03"})
		assert.Equal(t, booking.KindValidation, booking.ErrorKind(err))
	})
}
