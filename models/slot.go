package models

import (
	"fmt"
	"time"
)

// DateLayout is the canonical calendar-date format used across the engine.
const DateLayout = "2006-01-02"

// DailySlotTimes is the fixed enumeration of bookable start times, in
// ascending order. Therapies always start on the hour; there is no
// interval arithmetic anywhere in the engine.
var DailySlotTimes = []string{
	"07:00", "08:00", "09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00", "18:00",
}

// MakeSlotKey builds the canonical identity of one resource's reservation
// at one date and time. The separator never occurs in resource IDs (see
// validation in the booking service), so distinct triples always yield
// distinct keys.
func MakeSlotKey(resourceID, date, timeOfDay string) string {
	return fmt.Sprintf("%s|%s|%s", resourceID, date, timeOfDay)
}

// SlotLock is the atomic unit of contention: one resource reserved at one
// date/time, owned by exactly one booking. The key doubles as the document
// _id so the store enforces uniqueness.
type SlotLock struct {
	Key        string    `bson:"_id" json:"key"`
	ResourceID string    `bson:"resourceId" json:"resourceId"`
	Date       string    `bson:"date" json:"date"`
	Time       string    `bson:"time" json:"time"`
	BookingID  string    `bson:"bookingId" json:"bookingId"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// NewSlotLock derives a SlotLock for a resource/date/time triple.
func NewSlotLock(resourceID, date, timeOfDay, bookingID string) SlotLock {
	return SlotLock{
		Key:        MakeSlotKey(resourceID, date, timeOfDay),
		ResourceID: resourceID,
		Date:       date,
		Time:       timeOfDay,
		BookingID:  bookingID,
		CreatedAt:  time.Now(),
	}
}

// AvailableSlot is one entry of an availability response: a bookable start
// time with the room the first-fit policy assigned to it.
type AvailableSlot struct {
	Time   string `json:"time"`
	RoomID string `json:"roomId"`
}
