package domain

// Default configuration values
const (
	DefaultShiftDurationMinutes = 30
	DefaultTimezone             = "UTC"
)

// Business validation constants
const (
	MaxShiftDurationMinutes     = 480 // 8 hours
	MaxServiceDurationMinutes   = 24 * 60
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MinutesPerDay               = 24 * 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Weekday numbering: 1 = Sunday ... 7 = Saturday
const (
	Sunday     = 1
	Saturday   = 7
	DaysInWeek = 7
)
