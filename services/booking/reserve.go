package booking

import (
	"context"
	"errors"
	"time"

	catalogRepo "aarogya/database/repository/catalog"
	"aarogya/models"
	"aarogya/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxCourseDays bounds a single reservation. Panchakarma courses run up to
// several weeks; anything longer is a malformed request.
const maxCourseDays = 60

// Reserve books a contiguous run of dayCount days at one time-of-day on a
// provider and a room, all-or-nothing. Either the booking and every one of
// its 2×N slot locks commit together, or nothing is written. Side effects
// (pre-care push, therapy record, deferred reminder) run only after the
// commit and never fail the reservation.
func (s *DefaultBookingService) Reserve(ctx context.Context, req ReserveRequest) (*models.Booking, error) {
	svc, err := s.validateReserve(ctx, &req)
	if err != nil {
		return nil, err
	}

	status := models.BookingStatusConfirmed
	if svc.Rules.RequiresConfirmation {
		status = models.BookingStatusPending
	}

	now := s.now()
	booking := &models.Booking{
		ID:          uuid.New().String(),
		CustomerID:  req.CustomerID,
		ServiceID:   svc.ID,
		ServiceName: svc.Name,
		ProviderID:  req.ProviderID,
		RoomID:      req.RoomID,
		StartDate:   req.StartDate,
		Time:        req.Time,
		DayCount:    req.DayCount,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	locks, err := booking.SlotLocks()
	if err != nil {
		return nil, newValidationError("invalid start date %q", req.StartDate)
	}

	txnCtx, cancel := context.WithTimeout(ctx, s.opTimeout())
	defer cancel()
	if err := s.Repo.ReserveSlots(txnCtx, booking, locks); err != nil {
		return nil, mapRepoError("reserve", err)
	}

	utils.GetLogger().Info("booking reserved",
		zap.String("bookingID", booking.ID),
		zap.String("serviceID", booking.ServiceID),
		zap.String("startDate", booking.StartDate),
		zap.Int("dayCount", booking.DayCount),
	)

	// The booking is committed and real from here on; dispatcher failures
	// are logged, never surfaced.
	if s.Dispatcher != nil {
		s.Dispatcher.BookingReserved(*booking, *svc)
	}
	return booking, nil
}

// validateReserve fails fast on malformed requests before any transaction
// is opened, and resolves the service the booking is for.
func (s *DefaultBookingService) validateReserve(ctx context.Context, req *ReserveRequest) (*models.Service, error) {
	if req.CustomerID == "" {
		return nil, newValidationError("customerId is required")
	}
	if !validResourceID(req.ProviderID) {
		return nil, newValidationError("invalid providerId %q", req.ProviderID)
	}
	if !validResourceID(req.RoomID) {
		return nil, newValidationError("invalid roomId %q", req.RoomID)
	}
	if !validSlotTime(req.Time) {
		return nil, newValidationError("invalid time %q, not a bookable start time", req.Time)
	}
	if req.DayCount < 1 || req.DayCount > maxCourseDays {
		return nil, newValidationError("dayCount must be between 1 and %d", maxCourseDays)
	}
	start, err := time.ParseInLocation(models.DateLayout, req.StartDate, time.Local)
	if err != nil {
		return nil, newValidationError("invalid startDate %q, want YYYY-MM-DD", req.StartDate)
	}

	svc, err := s.Catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, newNotFoundError("service %s not found", req.ServiceID)
		}
		return nil, err
	}
	if !svc.Active {
		return nil, newNotFoundError("service %s is not active", req.ServiceID)
	}

	room, err := s.lookupRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if !room.Supports(svc.Name) {
		return nil, newValidationError("room %s cannot host %s", room.ID, svc.Name)
	}

	now := s.now()
	firstSlot := slotStartTime(start, req.Time)
	if !firstSlot.After(now) {
		return nil, newValidationError("start %s %s is in the past", req.StartDate, req.Time)
	}
	if svc.Rules.MinAdvanceBookingHrs > 0 && firstSlot.Before(now.Add(time.Duration(svc.Rules.MinAdvanceBookingHrs)*time.Hour)) {
		return nil, newValidationError("start %s %s is closer than the required %d hours notice", req.StartDate, req.Time, svc.Rules.MinAdvanceBookingHrs)
	}
	if svc.Rules.MaxAdvanceBookingDays > 0 && start.After(now.AddDate(0, 0, svc.Rules.MaxAdvanceBookingDays)) {
		return nil, newValidationError("start %s is beyond the %d-day booking window", req.StartDate, svc.Rules.MaxAdvanceBookingDays)
	}

	return svc, nil
}

// lookupRoom resolves one active room from the catalog.
func (s *DefaultBookingService) lookupRoom(ctx context.Context, roomID string) (*models.Room, error) {
	rooms, err := s.Catalog.GetRooms(ctx, true)
	if err != nil {
		return nil, err
	}
	for i := range rooms {
		if rooms[i].ID == roomID {
			return &rooms[i], nil
		}
	}
	return nil, newNotFoundError("room %s not found or inactive", roomID)
}
