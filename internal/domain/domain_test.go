package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-WorkshopBooking/pkg/ptr"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/types"
)

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.want, b.CanTransitionTo(tt.to))
		})
	}
}

func TestBooking_TerminalAndActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusCompleted}).IsTerminal())
	assert.True(t, (&Booking{Status: StatusCancelled}).IsTerminal())
	assert.False(t, (&Booking{Status: StatusPending}).IsTerminal())

	assert.True(t, (&Booking{Status: StatusCompleted}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsActive())
}

func TestOperatingSchedule_Validate(t *testing.T) {
	valid := OperatingSchedule{
		DayOfWeek:               2,
		IsWorkingDay:            true,
		OpeningTime:             "09:00",
		ClosingTime:             "18:00",
		ReceptionEndTime:        ptr.Ptr(types.TimeString("17:00")),
		MaxSimultaneousServices: 3,
	}
	assert.NoError(t, valid.Validate())

	equal := valid
	equal.ClosingTime = "09:00"
	equal.ReceptionEndTime = nil
	assert.NoError(t, equal.Validate())

	inverted := valid
	inverted.OpeningTime = "19:00"
	assert.ErrorIs(t, inverted.Validate(), ErrInvalidSchedule)

	lateReception := valid
	lateReception.ReceptionEndTime = ptr.Ptr(types.TimeString("18:30"))
	assert.ErrorIs(t, lateReception.Validate(), ErrInvalidSchedule)

	badDay := valid
	badDay.DayOfWeek = 8
	assert.ErrorIs(t, badDay.Validate(), ErrInvalidSchedule)

	dayOff := OperatingSchedule{DayOfWeek: 1, IsWorkingDay: false}
	assert.NoError(t, dayOff.Validate())
}

func TestDealershipConfiguration_Validate(t *testing.T) {
	cfg := DefaultDealershipConfiguration(1)
	assert.NoError(t, cfg.Validate())

	cfg.ShiftDurationMinutes = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfiguration)

	cfg = DefaultDealershipConfiguration(1)
	cfg.Timezone = "Mars/Olympus"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfiguration)

	cfg = DefaultDealershipConfiguration(1)
	cfg.Timezone = "Europe/Moscow"
	loc, err := cfg.Location()
	assert.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestService_AvailableOn(t *testing.T) {
	s := Service{AvailableDays: [DaysInWeek]bool{false, true, true, true, true, true, false}}

	assert.False(t, s.AvailableOn(Sunday))
	assert.True(t, s.AvailableOn(2))
	assert.False(t, s.AvailableOn(Saturday))
	assert.False(t, s.AvailableOn(0))
}

func TestTimeWindow_Contains(t *testing.T) {
	w := TimeWindow{Start: "10:00", End: "12:00"}

	assert.True(t, w.Contains("10:00"))
	assert.True(t, w.Contains("12:00"))
	assert.False(t, w.Contains("09:59"))
	assert.False(t, w.Contains("12:01"))
}

func TestBlockedDate_IsSlotBlocked(t *testing.T) {
	var none *BlockedDate
	assert.False(t, none.IsSlotBlocked("10:00"))

	b := &BlockedDate{BlockedSlots: []types.TimeString{"10:00", "11:30"}}
	assert.True(t, b.IsSlotBlocked("11:30"))
	assert.False(t, b.IsSlotBlocked("11:00"))
}
