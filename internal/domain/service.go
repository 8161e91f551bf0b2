package domain

import (
	"fmt"

	"github.com/m04kA/SMC-WorkshopBooking/pkg/types"
)

// TimeWindow inclusive time-of-day interval
type TimeWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// Contains returns true if start <= t <= end
func (w TimeWindow) Contains(t types.TimeString) bool {
	return !t.IsBefore(w.Start) && !t.IsAfter(w.End)
}

// Service a bookable service offered by a dealership
type Service struct {
	ID              int64
	DealershipID    int64
	Name            string
	DurationMinutes int
	DailyLimit      *int // лимит бронирований услуги в день по всему дилеру
	// AvailableDays[0] = Sunday ... AvailableDays[6] = Saturday
	AvailableDays   [DaysInWeek]bool
	TimeRestriction *TimeWindow
	IsActive        bool
}

// AvailableOn returns the weekday flag, dayOfWeek is 1 = Sunday ... 7 = Saturday
func (s *Service) AvailableOn(dayOfWeek int) bool {
	if dayOfWeek < Sunday || dayOfWeek > Saturday {
		return false
	}
	return s.AvailableDays[dayOfWeek-1]
}

// Validate checks duration and the restriction window
func (s *Service) Validate() error {
	if s.DurationMinutes <= 0 || s.DurationMinutes > MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration %d", ErrInvalidService, s.DurationMinutes)
	}
	if s.DailyLimit != nil && *s.DailyLimit < 0 {
		return fmt.Errorf("%w: negative daily_limit", ErrInvalidService)
	}
	if w := s.TimeRestriction; w != nil && w.Start.IsAfter(w.End) {
		return fmt.Errorf("%w: restriction %s-%s", ErrInvalidService, w.Start, w.End)
	}
	return nil
}
