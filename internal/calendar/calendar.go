package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/types"
)

// ErrInvalidDate возвращается при некорректном формате даты
var ErrInvalidDate = errors.New("calendar: invalid date, expected YYYY-MM-DD")

// Clock источник текущего времени
type Clock interface {
	Now() time.Time
}

// RealClock системные часы
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock часы, всегда возвращающие одно и то же время (для тестов)
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}

// NowIn текущее время в часовом поясе loc
func NowIn(clock Clock, loc *time.Location) time.Time {
	return clock.Now().In(loc)
}

// ParseDate разбирает YYYY-MM-DD как полночь в часовом поясе loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(domain.DateFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// InLocation переносит календарную дату (год, месяц, день) в loc, отбрасывая время
func InLocation(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DayOfWeek номер дня недели: 1 = воскресенье ... 7 = суббота
func DayOfWeek(t time.Time) int {
	return int(t.Weekday()) + 1
}

// IsSameDay сравнивает календарные даты. Оба значения должны быть в одном часовом поясе.
func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsToday true, если date совпадает с календарной датой now
func IsToday(date, now time.Time) bool {
	return IsSameDay(date, now.In(date.Location()))
}

// IsPastDate true, если date строго раньше календарной даты now
func IsPastDate(date, now time.Time) bool {
	today := InLocation(now.In(date.Location()), date.Location())
	return InLocation(date, date.Location()).Before(today)
}

// MinuteOfDay минута суток для t
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// TimeOfDay время суток t в формате HH:MM
func TimeOfDay(t time.Time) types.TimeString {
	return types.NewTimeString(t)
}
