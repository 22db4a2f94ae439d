package models

// BookingRules configures the advance-booking policy of a service.
type BookingRules struct {
	MaxAdvanceBookingDays int  `bson:"maxAdvanceBookingDays" json:"maxAdvanceBookingDays"`
	MinAdvanceBookingHrs  int  `bson:"minAdvanceBookingHours" json:"minAdvanceBookingHours"`
	RequiresConfirmation  bool `bson:"requiresConfirmation" json:"requiresConfirmation"`
}

// DayWindow is a working-hour window for one weekday, bounds inclusive.
type DayWindow struct {
	Start string `bson:"start" json:"start"` // "HH:MM"
	End   string `bson:"end" json:"end"`     // "HH:MM"
}

// Service is read-only catalog input: a bookable therapy with its duration,
// default practitioner, per-weekday working hours and booking rules. The
// engine consults services but never mutates them.
type Service struct {
	ID                string               `bson:"id" json:"id"`
	Name              string               `bson:"name" json:"name"`
	DurationMinutes   int                  `bson:"durationMinutes" json:"durationMinutes"`
	DefaultProviderID string               `bson:"defaultProviderId" json:"defaultProviderId"`
	// WorkingHours is keyed by lowercase weekday name ("monday"). A missing
	// weekday means the service is not offered that day.
	WorkingHours        map[string]DayWindow `bson:"workingHours" json:"workingHours"`
	Rules               BookingRules         `bson:"bookingRules" json:"bookingRules"`
	PreCareInstructions string               `bson:"preCareInstructions,omitempty" json:"preCareInstructions,omitempty"`
	Active              bool                 `bson:"active" json:"active"`
}
