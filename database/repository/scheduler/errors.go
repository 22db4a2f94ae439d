package schedulerRepo

import (
	"errors"
	"fmt"
)

// ErrBookingNotFound is returned when a booking lookup matches nothing.
var ErrBookingNotFound = errors.New("booking not found")

// SlotTakenError reports that a slot lock could not be acquired because
// another booking already holds it. It names the colliding resource, date
// and time so callers can tell the user exactly what is gone.
type SlotTakenError struct {
	ResourceID string
	Date       string
	Time       string
	OwnerID    string // booking currently holding the lock, if known
}

func (e *SlotTakenError) Error() string {
	return fmt.Sprintf("slot already taken: resource %s on %s at %s", e.ResourceID, e.Date, e.Time)
}
