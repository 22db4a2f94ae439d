package booking

import (
	"errors"
	"fmt"

	schedulerRepo "aarogya/database/repository/scheduler"
)

// Error kinds surfaced to callers. Downstream side-effect failures are
// logged only and never appear here.
const (
	KindValidation   = "validation"
	KindNotFound     = "not_found"
	KindSlotConflict = "slot_conflict"
	KindTimeout      = "timeout"
)

// Error is the booking engine's caller-facing error. SlotConflict errors
// carry the colliding resource/date/time so the UI can say exactly which
// slot is gone.
type Error struct {
	Kind       string
	Message    string
	ResourceID string
	Date       string
	Time       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newValidationError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func newNotFoundError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func newTimeoutError(op string) *Error {
	return &Error{Kind: KindTimeout, Message: fmt.Sprintf("%s did not complete in time; re-check booking state before retrying", op)}
}

func newSlotConflictError(taken *schedulerRepo.SlotTakenError) *Error {
	return &Error{
		Kind:       KindSlotConflict,
		Message:    taken.Error(),
		ResourceID: taken.ResourceID,
		Date:       taken.Date,
		Time:       taken.Time,
	}
}

// ErrorKind classifies any error returned by the engine; unknown errors
// report an empty kind.
func ErrorKind(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
