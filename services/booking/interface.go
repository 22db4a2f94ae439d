package booking

import (
	"context"

	"aarogya/models"
)

// AvailabilityRequest asks which start times are bookable for a service on
// one calendar date.
type AvailabilityRequest struct {
	ServiceID           string `json:"serviceId" binding:"required"`
	Date                string `json:"date" binding:"required"` // "2006-01-02"
	PreferredProviderID string `json:"preferredProviderId,omitempty"`
}

// ReserveRequest books a contiguous multi-day course at one fixed
// time-of-day on a provider and a room.
type ReserveRequest struct {
	CustomerID string `json:"customerId"`
	ServiceID  string `json:"serviceId" binding:"required"`
	ProviderID string `json:"providerId" binding:"required"`
	RoomID     string `json:"roomId" binding:"required"`
	StartDate  string `json:"startDate" binding:"required"`
	Time       string `json:"time" binding:"required"`
	DayCount   int    `json:"dayCount" binding:"required"`
}

// RescheduleRequest moves an existing booking to a new date/time and,
// optionally, a different provider or room.
type RescheduleRequest struct {
	BookingID  string `json:"bookingId"`
	CustomerID string `json:"customerId"`
	NewDate    string `json:"newDate" binding:"required"`
	NewTime    string `json:"newTime" binding:"required"`
	ProviderID string `json:"providerId,omitempty"`
	RoomID     string `json:"roomId,omitempty"`
}

// BookingService is the caller-facing contract of the reservation and
// scheduling engine.
type BookingService interface {
	// ComputeAvailability is read-only and advisory: a reported slot can
	// be taken by a concurrent caller before this caller confirms.
	ComputeAvailability(ctx context.Context, req AvailabilityRequest) ([]models.AvailableSlot, error)
	Reserve(ctx context.Context, req ReserveRequest) (*models.Booking, error)
	Reschedule(ctx context.Context, req RescheduleRequest) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID, customerID string) error
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	GetCustomerBookings(ctx context.Context, customerID string) ([]models.Booking, error)
}
