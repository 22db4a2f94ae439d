package booking

import (
	"context"
	"time"

	"aarogya/models"
	"aarogya/utils"

	"go.uber.org/zap"
)

// Reschedule moves a booking to a new date/time (and optionally a new
// provider or room), atomically releasing every lock the booking holds and
// re-acquiring the full set for its day count at the new coordinates. A
// three-day course stays a three-day course after a reschedule; losing
// coverage of later days would silently corrupt the calendar.
func (s *DefaultBookingService) Reschedule(ctx context.Context, req RescheduleRequest) (*models.Booking, error) {
	if req.BookingID == "" {
		return nil, newValidationError("bookingId is required")
	}
	if !validSlotTime(req.NewTime) {
		return nil, newValidationError("invalid time %q, not a bookable start time", req.NewTime)
	}
	newStart, err := time.ParseInLocation(models.DateLayout, req.NewDate, time.Local)
	if err != nil {
		return nil, newValidationError("invalid date %q, want YYYY-MM-DD", req.NewDate)
	}
	if req.ProviderID != "" && !validResourceID(req.ProviderID) {
		return nil, newValidationError("invalid providerId %q", req.ProviderID)
	}
	if req.RoomID != "" && !validResourceID(req.RoomID) {
		return nil, newValidationError("invalid roomId %q", req.RoomID)
	}

	booking, err := s.Repo.GetBookingByID(ctx, req.BookingID)
	if err != nil {
		return nil, mapRepoError("reschedule", err)
	}
	if booking.CustomerID != req.CustomerID {
		// Do not reveal foreign bookings.
		return nil, newNotFoundError("booking not found")
	}
	switch booking.Status {
	case models.BookingStatusCancelled, models.BookingStatusCompleted:
		return nil, newValidationError("booking is %s and cannot be rescheduled", booking.Status)
	}
	if !slotStartTime(newStart, req.NewTime).After(s.now()) {
		return nil, newValidationError("new start %s %s is in the past", req.NewDate, req.NewTime)
	}

	updated := *booking
	updated.StartDate = req.NewDate
	updated.Time = req.NewTime
	if req.ProviderID != "" {
		updated.ProviderID = req.ProviderID
	}
	if req.RoomID != "" {
		updated.RoomID = req.RoomID
	}
	updated.Status = models.BookingStatusRescheduled
	updated.UpdatedAt = s.now()

	newLocks, err := updated.SlotLocks()
	if err != nil {
		return nil, newValidationError("invalid date %q", req.NewDate)
	}

	txnCtx, cancel := context.WithTimeout(ctx, s.opTimeout())
	defer cancel()
	if err := s.Repo.RescheduleSlots(txnCtx, &updated, newLocks); err != nil {
		return nil, mapRepoError("reschedule", err)
	}

	utils.GetLogger().Info("booking rescheduled",
		zap.String("bookingID", updated.ID),
		zap.String("newDate", updated.StartDate),
		zap.String("newTime", updated.Time),
	)

	if s.Dispatcher != nil {
		s.Dispatcher.BookingRescheduled(updated)
	}
	return &updated, nil
}
