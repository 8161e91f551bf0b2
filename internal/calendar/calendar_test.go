package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestDayOfWeek(t *testing.T) {
	// 2025-06-01 воскресенье
	sunday := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DayOfWeek(sunday))
	assert.Equal(t, 2, DayOfWeek(sunday.AddDate(0, 0, 1)))
	assert.Equal(t, 7, DayOfWeek(sunday.AddDate(0, 0, 6)))
}

func TestParseDate(t *testing.T) {
	loc := mustLoc(t, "Asia/Dubai")

	d, err := ParseDate("2025-06-01", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, loc), d)

	_, err = ParseDate("01.06.2025", loc)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestIsToday_UsesTenantTimezone(t *testing.T) {
	dubai := mustLoc(t, "Asia/Dubai") // UTC+4

	// 22:00 UTC 1 июня = 02:00 2 июня в Дубае
	now := time.Date(2025, 6, 1, 22, 0, 0, 0, time.UTC)

	june2 := time.Date(2025, 6, 2, 0, 0, 0, 0, dubai)
	june1 := time.Date(2025, 6, 1, 0, 0, 0, 0, dubai)

	assert.True(t, IsToday(june2, now))
	assert.False(t, IsToday(june1, now))
	assert.True(t, IsPastDate(june1, now))
	assert.False(t, IsPastDate(june2, now))
}

func TestNowIn(t *testing.T) {
	dubai := mustLoc(t, "Asia/Dubai")
	clock := FixedClock{T: time.Date(2025, 6, 1, 6, 30, 0, 0, time.UTC)}

	now := NowIn(clock, dubai)
	assert.Equal(t, 10*60+30, MinuteOfDay(now))
	assert.Equal(t, "10:30", TimeOfDay(now).String())
}
