package booking

import (
	"context"

	"aarogya/models"
	"aarogya/utils"

	"go.uber.org/zap"
)

// Cancel releases every slot lock the booking holds and moves it to the
// cancelled status in one transaction. The booking record itself is kept;
// only the status marks its end of life.
func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID, customerID string) error {
	if bookingID == "" {
		return newValidationError("bookingId is required")
	}

	booking, err := s.Repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return mapRepoError("cancel", err)
	}
	if booking.CustomerID != customerID {
		return newNotFoundError("booking not found")
	}
	if booking.Status == models.BookingStatusCancelled {
		return newValidationError("booking is already cancelled")
	}

	txnCtx, cancel := context.WithTimeout(ctx, s.opTimeout())
	defer cancel()
	if err := s.Repo.ReleaseSlots(txnCtx, bookingID, models.BookingStatusCancelled); err != nil {
		return mapRepoError("cancel", err)
	}

	utils.GetLogger().Info("booking cancelled", zap.String("bookingID", bookingID))

	if s.Dispatcher != nil {
		s.Dispatcher.BookingCancelled(*booking)
	}
	return nil
}
