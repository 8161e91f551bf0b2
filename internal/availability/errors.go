package availability

import "errors"

var (
	// ErrInvalidShiftDuration shift_duration <= 0, сетку построить нельзя
	ErrInvalidShiftDuration = errors.New("availability: shift duration must be positive")

	// ErrInvalidSchedule расписание дня противоречиво (opening позже closing)
	ErrInvalidSchedule = errors.New("availability: invalid operating schedule")
)
