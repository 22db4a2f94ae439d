package models

import "time"

// Booking lifecycle statuses.
const (
	BookingStatusPending     = "pending"
	BookingStatusConfirmed   = "confirmed"
	BookingStatusCancelled   = "cancelled"
	BookingStatusCompleted   = "completed"
	BookingStatusRescheduled = "rescheduled"
)

// Booking is the parent record of a reserved therapy course. It owns one
// SlotLock per reserved day on each of the provider and room resources;
// the locks reference back by BookingID.
type Booking struct {
	ID          string    `bson:"id" json:"id"`
	CustomerID  string    `bson:"customer_id" json:"customer_id"`
	ServiceID   string    `bson:"service_id" json:"service_id"`
	ServiceName string    `bson:"service_name" json:"service_name"`
	ProviderID  string    `bson:"provider_id" json:"provider_id"`
	RoomID      string    `bson:"room_id" json:"room_id"`
	StartDate   string    `bson:"start_date" json:"start_date"` // "2006-01-02"
	Time        string    `bson:"time" json:"time"`             // "HH:MM", same slot every day
	DayCount    int       `bson:"day_count" json:"day_count"`   // >= 1
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// Dates returns the contiguous run of calendar dates the booking covers,
// starting at StartDate. Plain day increments; weekends and holidays are
// not skipped.
func (b *Booking) Dates() ([]string, error) {
	start, err := time.Parse(DateLayout, b.StartDate)
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, b.DayCount)
	for i := 0; i < b.DayCount; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format(DateLayout))
	}
	return dates, nil
}

// SlotLocks derives the full lock set for the booking: one lock per day on
// the provider and one per day on the room.
func (b *Booking) SlotLocks() ([]SlotLock, error) {
	dates, err := b.Dates()
	if err != nil {
		return nil, err
	}
	locks := make([]SlotLock, 0, 2*len(dates))
	for _, d := range dates {
		locks = append(locks, NewSlotLock(b.ProviderID, d, b.Time, b.ID))
		locks = append(locks, NewSlotLock(b.RoomID, d, b.Time, b.ID))
	}
	return locks, nil
}
