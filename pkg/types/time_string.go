package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

const minutesPerDay = 24 * 60

// TimeString время суток в формате "HH:MM" без привязки к дате и часовому поясу.
// Нулевое значение ("") означает "время не задано".
type TimeString string

// NewTimeStringFromString разбирает строку "HH:MM" (или "HH:MM:SS" из Postgres TIME)
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	if len(s) == 8 && s[5] == ':' {
		s = s[:5]
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return TimeString(t.Format("15:04")), nil
}

// MustTimeString разбирает строку и паникует при ошибке. Только для констант и тестов.
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// NewTimeString берет часы и минуты из time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// FromMinutes строит время по количеству минут от полуночи
func FromMinutes(m int) TimeString {
	m = ((m % minutesPerDay) + minutesPerDay) % minutesPerDay
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60))
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() int {
	s := string(t)
	if len(s) < 5 {
		return 0
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return h*60 + m
}

// AddMinutes сдвигает время на n минут. Результат может выйти за пределы суток,
// поэтому для сравнения с концом дня используйте Minutes() + n.
func (t TimeString) AddMinutes(n int) TimeString {
	return FromMinutes(t.Minutes() + n)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат "HH:MM"
func (t TimeString) Validate() error {
	if _, err := time.Parse("15:04", string(t)); err != nil || len(t) != 5 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// On возвращает момент времени t в указанный день (в часовом поясе day)
func (t TimeString) On(day time.Time) time.Time {
	y, mo, d := day.Date()
	m := t.Minutes()
	return time.Date(y, mo, d, m/60, m%60, 0, 0, day.Location())
}

func (t TimeString) String() string {
	return string(t)
}

// Scan реализует sql.Scanner для колонок типа TIME
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		ts, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = ts
		return nil
	case []byte:
		ts, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = ts
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}
