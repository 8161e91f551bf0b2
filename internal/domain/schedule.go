package domain

import (
	"fmt"

	"github.com/m04kA/SMC-WorkshopBooking/pkg/types"
)

// OperatingSchedule working hours of a workshop for one weekday (1 = Sunday ... 7 = Saturday)
type OperatingSchedule struct {
	ID                      int64
	WorkshopID              int64
	DayOfWeek               int
	IsWorkingDay            bool
	OpeningTime             types.TimeString
	ClosingTime             types.TimeString
	ReceptionEndTime        *types.TimeString // последнее время приема машины
	MaxSimultaneousServices int
	MaxArrivalsPerSlot      *int
}

// Validate checks opening <= reception_end <= closing and capacity values.
// opening == closing is allowed and produces an empty grid.
func (s *OperatingSchedule) Validate() error {
	if s.DayOfWeek < Sunday || s.DayOfWeek > Saturday {
		return fmt.Errorf("%w: day_of_week %d out of range", ErrInvalidSchedule, s.DayOfWeek)
	}
	if !s.IsWorkingDay {
		return nil
	}
	if err := s.OpeningTime.Validate(); err != nil {
		return fmt.Errorf("%w: opening_time: %v", ErrInvalidSchedule, err)
	}
	if err := s.ClosingTime.Validate(); err != nil {
		return fmt.Errorf("%w: closing_time: %v", ErrInvalidSchedule, err)
	}
	if s.OpeningTime.IsAfter(s.ClosingTime) {
		return fmt.Errorf("%w: opening %s after closing %s", ErrInvalidSchedule, s.OpeningTime, s.ClosingTime)
	}
	if s.ReceptionEndTime != nil {
		r := *s.ReceptionEndTime
		if r.IsBefore(s.OpeningTime) || r.IsAfter(s.ClosingTime) {
			return fmt.Errorf("%w: reception_end %s outside [%s, %s]", ErrInvalidSchedule, r, s.OpeningTime, s.ClosingTime)
		}
	}
	if s.MaxSimultaneousServices < 1 {
		return fmt.Errorf("%w: max_simultaneous_services must be positive", ErrInvalidSchedule)
	}
	if s.MaxArrivalsPerSlot != nil && *s.MaxArrivalsPerSlot < 1 {
		return fmt.Errorf("%w: max_arrivals_per_slot must be positive", ErrInvalidSchedule)
	}
	return nil
}

// WorkingMinutes length of the working day in minutes
func (s *OperatingSchedule) WorkingMinutes() int {
	return s.ClosingTime.Minutes() - s.OpeningTime.Minutes()
}
