package booking_test

import (
	"context"
	"time"

	catalogRepo "aarogya/database/repository/catalog"
	schedulerRepo "aarogya/database/repository/scheduler"
	"aarogya/models"
	"aarogya/services/booking"
)

// testNow pins the engine clock to 08:00 on Saturday 2024-06-01.
var testNow = time.Date(2024, 6, 1, 8, 0, 0, 0, time.Local)

func newTestEngine() (*booking.DefaultBookingService, *schedulerRepo.MemorySchedulerRepo, *catalogRepo.MemoryCatalogRepo) {
	repo := schedulerRepo.NewMemorySchedulerRepo()
	catalog := catalogRepo.NewMemoryCatalogRepo()

	catalog.PutService(models.Service{
		ID:                "abhyang",
		Name:              "Abhyang",
		DurationMinutes:   60,
		DefaultProviderID: "provider-vaidya",
		Rules: models.BookingRules{
			MaxAdvanceBookingDays: 30,
			MinAdvanceBookingHrs:  2,
		},
		PreCareInstructions: "Avoid heavy meals two hours before your session.",
		Active:              true,
	})
	catalog.PutService(models.Service{
		ID:                "panchakarma",
		Name:              "Panchakarma",
		DurationMinutes:   90,
		DefaultProviderID: "provider-vaidya",
		Rules: models.BookingRules{
			MaxAdvanceBookingDays: 60,
			RequiresConfirmation:  true,
		},
		Active: true,
	})
	catalog.PutService(models.Service{
		ID:     "vamana",
		Name:   "Vamana",
		Active: true,
	})
	catalog.PutService(models.Service{
		ID:     "shirodhara-old",
		Name:   "Shirodhara",
		Active: false,
	})

	catalog.PutRoom(models.Room{
		ID:                 "room-dhanvantari",
		Name:               "Dhanvantari",
		SupportedTherapies: []string{"Abhyang", "Panchakarma"},
		Active:             true,
	})
	catalog.PutRoom(models.Room{
		ID:                 "room-sushruta",
		Name:               "Sushruta",
		SupportedTherapies: []string{"Abhyang", "Shirodhara"},
		Active:             true,
	})
	catalog.PutRoom(models.Room{
		ID:                 "room-steam",
		Name:               "Steam Chamber",
		SupportedTherapies: []string{"Steam"},
		Active:             true,
	})

	svc := &booking.DefaultBookingService{
		Repo:    repo,
		Catalog: catalog,
		Now:     func() time.Time { return testNow },
	}
	return svc, repo, catalog
}

// seedBooking reserves a course through the engine and returns it.
func seedBooking(svc *booking.DefaultBookingService, customerID, startDate string, dayCount int) (*models.Booking, error) {
	return svc.Reserve(context.Background(), booking.ReserveRequest{
		CustomerID: customerID,
		ServiceID:  "abhyang",
		ProviderID: "provider-vaidya",
		RoomID:     "room-dhanvantari",
		StartDate:  startDate,
		Time:       "11:00",
		DayCount:   dayCount,
	})
}

// occupySlot plants a foreign booking's locks directly in the repository.
func occupySlot(repo *schedulerRepo.MemorySchedulerRepo, bookingID string, resourceIDs []string, date, timeOfDay string) error {
	foreign := &models.Booking{
		ID:         bookingID,
		CustomerID: "someone-else",
		Status:     models.BookingStatusConfirmed,
	}
	locks := make([]models.SlotLock, 0, len(resourceIDs))
	for _, resourceID := range resourceIDs {
		locks = append(locks, models.NewSlotLock(resourceID, date, timeOfDay, bookingID))
	}
	return repo.ReserveSlots(context.Background(), foreign, locks)
}
