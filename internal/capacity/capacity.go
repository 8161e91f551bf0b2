package capacity

import (
	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/types"
)

// DayLoad загрузка мастерской на дату
type DayLoad struct {
	// Bookings бронирования мастерской на дату. Отмененные игнорируются при подсчете.
	Bookings []*domain.Booking
	// ServiceDailyCount активные бронирования услуги на дату по всему дилеру
	ServiceDailyCount int
}

// MinutesOf минута суток для времени t
func MinutesOf(t types.TimeString) int {
	return t.Minutes()
}

// Overlaps проверяет пересечение полуоткрытых интервалов [aStart, aStart+aDur) и [bStart, bStart+bDur).
// Интервалы, касающиеся концами, не пересекаются.
func Overlaps(aStart, aDur, bStart, bDur int) bool {
	return aStart < bStart+bDur && bStart < aStart+aDur
}

// CountAtExactTime количество активных бронирований, начинающихся ровно в t
func CountAtExactTime(bookings []*domain.Booking, t types.TimeString) int {
	count := 0
	for _, b := range bookings {
		if b.IsActive() && b.StartTime == t {
			count++
		}
	}
	return count
}

// CountOverlapping количество активных бронирований, пересекающихся с [start, start+duration)
func CountOverlapping(bookings []*domain.Booking, start types.TimeString, duration int) int {
	s := start.Minutes()
	count := 0
	for _, b := range bookings {
		if b.IsActive() && Overlaps(s, duration, b.StartMinute(), b.DurationMinutes) {
			count++
		}
	}
	return count
}

// CountActive количество активных бронирований
func CountActive(bookings []*domain.Booking) int {
	count := 0
	for _, b := range bookings {
		if b.IsActive() {
			count++
		}
	}
	return count
}

// CountActiveForService количество активных бронирований услуги
func CountActiveForService(bookings []*domain.Booking, serviceID int64) int {
	count := 0
	for _, b := range bookings {
		if b.IsActive() && b.ServiceID == serviceID {
			count++
		}
	}
	return count
}

// BookedMinutes суммарная длительность активных бронирований
func BookedMinutes(bookings []*domain.Booking) int {
	total := 0
	for _, b := range bookings {
		if b.IsActive() {
			total += b.DurationMinutes
		}
	}
	return total
}

// TotalMinuteCapacity (closing - opening) * max_simultaneous_services
func TotalMinuteCapacity(schedule *domain.OperatingSchedule) int {
	if schedule == nil {
		return 0
	}
	return schedule.WorkingMinutes() * schedule.MaxSimultaneousServices
}

// RemainingMinuteCapacity свободная емкость дня в минутах. Может быть отрицательной при перегрузе.
func RemainingMinuteCapacity(schedule *domain.OperatingSchedule, bookings []*domain.Booking) int {
	return TotalMinuteCapacity(schedule) - BookedMinutes(bookings)
}
