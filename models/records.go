package models

import "time"

// TimelineEntry is one planned day of a therapy course.
type TimelineEntry struct {
	Day    int    `bson:"day" json:"day"` // 1-based
	Date   string `bson:"date" json:"date"`
	Status string `bson:"status" json:"status"` // "planned", "done", "missed"
	Notes  string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// TherapyRecord tracks a patient's progress through a booked course. It is
// seeded by the side-effect dispatcher after a reservation commits and is
// maintained by clinic staff afterwards.
type TherapyRecord struct {
	ID         string          `bson:"id" json:"id"`
	BookingID  string          `bson:"bookingId" json:"bookingId"`
	CustomerID string          `bson:"customerId" json:"customerId"`
	ServiceID  string          `bson:"serviceId" json:"serviceId"`
	ProviderID string          `bson:"providerId" json:"providerId"`
	Timeline   []TimelineEntry `bson:"timeline" json:"timeline"`
	CreatedAt  time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time       `bson:"updatedAt" json:"updatedAt"`
}
