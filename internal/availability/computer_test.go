package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopBooking/internal/capacity"
	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/ptr"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/types"
)

// 2025-06-02 понедельник (DayOfWeek = 2)
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

// dayBefore момент накануне целевой даты: фильтр прошедших слотов не срабатывает
var dayBefore = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func allDays() [domain.DaysInWeek]bool {
	return [domain.DaysInWeek]bool{true, true, true, true, true, true, true}
}

func newContext(opening, closing string, shift, duration int) domain.SchedulingContext {
	return domain.SchedulingContext{
		DealershipID: 1,
		WorkshopID:   10,
		Dealership: domain.DealershipConfiguration{
			DealershipID:         1,
			ShiftDurationMinutes: shift,
			Timezone:             "UTC",
		},
		Location: time.UTC,
		Service: domain.Service{
			ID:              100,
			DealershipID:    1,
			DurationMinutes: duration,
			AvailableDays:   allDays(),
			IsActive:        true,
		},
		Schedule: &domain.OperatingSchedule{
			WorkshopID:              10,
			DayOfWeek:               2,
			IsWorkingDay:            true,
			OpeningTime:             types.TimeString(opening),
			ClosingTime:             types.TimeString(closing),
			MaxSimultaneousServices: 5,
		},
		Date:      monday,
		DayOfWeek: 2,
	}
}

func active(start string, duration int) *domain.Booking {
	return &domain.Booking{
		StartTime:       types.TimeString(start),
		DurationMinutes: duration,
		Status:          domain.StatusPending,
		ServiceID:       100,
	}
}

func slots(ss ...string) []types.TimeString {
	out := make([]types.TimeString, 0, len(ss))
	for _, s := range ss {
		out = append(out, types.TimeString(s))
	}
	return out
}

func grid(from, to string, step int) []types.TimeString {
	var out []types.TimeString
	for m := types.TimeString(from).Minutes(); m <= types.TimeString(to).Minutes(); m += step {
		out = append(out, types.FromMinutes(m))
	}
	return out
}

func TestCompute_RegularGrid(t *testing.T) {
	sc := newContext("09:00", "18:00", 30, 15)

	res, err := NewComputer(DefaultPolicy()).Compute(sc, capacity.DayLoad{}, dayBefore)

	require.NoError(t, err)
	assert.Equal(t, domain.ReasonNone, res.Reason)
	assert.False(t, res.FallbackApplied)
	assert.Equal(t, grid("09:00", "17:30", 30), res.Slots)
	assert.Len(t, res.Slots, 18)
}

func TestCandidates_ExcludeClosing(t *testing.T) {
	sc := newContext("09:00", "18:00", 30, 30)

	candidates, err := Candidates(sc)

	require.NoError(t, err)
	assert.Equal(t, grid("09:00", "17:30", 30), candidates)
}

func TestCompute_ServiceMustFinishBeforeClosing(t *testing.T) {
	sc := newContext("09:00", "18:00", 30, 30)

	res, err := NewComputer(DefaultPolicy()).Compute(sc, capacity.DayLoad{}, dayBefore)

	require.NoError(t, err)
	assert.Equal(t, grid("09:00", "17:00", 30), res.Slots)
	assert.NotContains(t, res.Slots, types.TimeString("17:30"))
}

func TestCompute_MaxArrivalsPerSlot(t *testing.T) {
	sc := newContext("09:00", "18:00", 30, 15)
	sc.Schedule.MaxArrivalsPerSlot = ptr.Ptr(2)
	load := capacity.DayLoad{Bookings: []*domain.Booking{active("10:00", 15), active("10:00", 15)}}

	res, err := NewComputer(DefaultPolicy()).Compute(sc, load, dayBefore)

	require.NoError(t, err)
	assert.NotContains(t, res.Slots, types.TimeString("10:00"))
	assert.Contains(t, res.Slots, types.TimeString("10:30"))
}

func TestCompute_OverlapCapacity(t *testing.T) {
	sc := newContext("09:00", "12:00", 30, 60)
	sc.Schedule.MaxSimultaneousServices = 1
	load := capacity.DayLoad{Bookings: []*domain.Booking{active("10:00", 60)}}

	res, err := NewComputer(DefaultPolicy()).Compute(sc, load, dayBefore)

	require.NoError(t, err)
	// 09:30 и 10:30 пересекаются с 10:00-11:00, 09:00 касается концом
	assert.Equal(t, slots("09:00"), res.Slots)
}

func TestCompute_CancelledBookingsFreeCapacity(t *testing.T) {
	sc := newContext("09:00", "11:00", 60, 30)
	sc.Schedule.MaxSimultaneousServices = 1
	cancelled := active("09:00", 30)
	cancelled.Status = domain.StatusCancelled

	res, err := NewComputer(DefaultPolicy()).Compute(sc, capacity.DayLoad{Bookings: []*domain.Booking{cancelled}}, dayBefore)

	require.NoError(t, err)
	assert.Equal(t, slots("09:00", "10:00"), res.Slots)
}

func TestCompute_DayLevelReasons(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(sc *domain.SchedulingContext, load *capacity.DayLoad)
		reason domain.UnavailabilityReason
	}{
		{
			name: "услуга не оказывается по понедельникам",
			mutate: func(sc *domain.SchedulingContext, _ *capacity.DayLoad) {
				sc.Service.AvailableDays[1] = false
			},
			reason: domain.ReasonServiceNotAvailableOnDay,
		},
		{
			name: "выходной",
			mutate: func(sc *domain.SchedulingContext, _ *capacity.DayLoad) {
				sc.Schedule.IsWorkingDay = false
			},
			reason: domain.ReasonDayNotWorking,
		},
		{
			name: "нет расписания",
			mutate: func(sc *domain.SchedulingContext, _ *capacity.DayLoad) {
				sc.Schedule = nil
			},
			reason: domain.ReasonDayNotWorking,
		},
		{
			name: "день заблокирован целиком",
			mutate: func(sc *domain.SchedulingContext, _ *capacity.DayLoad) {
				sc.BlockedDate = &domain.BlockedDate{FullDay: true}
			},
			reason: domain.ReasonDayBlocked,
		},
		{
			name: "дневной лимит услуги",
			mutate: func(sc *domain.SchedulingContext, load *capacity.DayLoad) {
				sc.Service.DailyLimit = ptr.Ptr(1)
				load.ServiceDailyCount = 1
			},
			reason: domain.ReasonDailyLimitReached,
		},
		{
			name: "услуга недоступна важнее выходного",
			mutate: func(sc *domain.SchedulingContext, _ *capacity.DayLoad) {
				sc.Service.AvailableDays[1] = false
				sc.Schedule.IsWorkingDay = false
			},
			reason: domain.ReasonServiceNotAvailableOnDay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := newContext("09:00", "18:00", 30, 30)
			load := capacity.DayLoad{}
			tt.mutate(&sc, &load)

			res, err := NewComputer(DefaultPolicy()).Compute(sc, load, dayBefore)

			require.NoError(t, err)
			assert.Equal(t, tt.reason, res.Reason)
			assert.Empty(t, res.Slots)
			assert.NotNil(t, res.Slots)
		})
	}
}

func TestCompute_DailyLimitNotReached(t *testing.T) {
	sc := newContext("09:00", "10:00", 30, 15)
	sc.Service.DailyLimit = ptr.Ptr(2)

	res, err := NewComputer(DefaultPolicy()).Compute(sc, capacity.DayLoad{ServiceDailyCount: 1}, dayBefore)

	require.NoError(t, err)
	assert.Equal(t, slots("09:00", "09:30"), res.Slots)
}

func TestCompute_TodayExcludesPastAndCurrentMinute(t *testing.T) {
	sc := newContext("09:00", "12:00", 30, 15)
	now := time.Date(2025, 6, 2, 10, 0, 30, 0, time.UTC)

	res, err := NewComputer(DefaultPolicy()).Compute(sc, capacity.DayLoad{}, now)

	require.NoError(t, err)
	assert.Equal(t, slots("10:30", "11:00", "11:30"), res.Slots)
}

func TestCompute_TodayInTenantTimezone(t *testing.T) {
	dubai, err := time.LoadLocation("Asia/Dubai")
	require.NoError(t, err)

	sc := newContext("09:00", "12:00", 60, 30)
	sc.Location = dubai
	sc.Date = time.Date(2025, 6, 2, 0, 0, 0, 0, dubai)
	// 06:15 UTC = 10:15 в Дубае
	now := time.Date(2025, 6, 2, 6, 15, 0, 0, time.UTC)

	res, err := NewComputer(DefaultPolicy()).Compute(sc, capacity.DayLoad{}, now)

	require.NoError(t, err)
	assert.Equal(t, slots("11:00"), res.Slots)
}

func TestCompute_ReceptionEnd(t *testing.T) {
	sc := newContext("09:00", "18:00", 60, 30)
	sc.Schedule.ReceptionEndTime = ptr.Ptr(types.TimeString("12:00"))

	res, err := NewComputer(DefaultPolicy()).Compute(sc, capacity.DayLoad{}, dayBefore)

	require.NoError(t, err)
	assert.Equal(t, slots("09:00", "10:00", "11:00", "12:00"), res.Slots)
}

func TestCompute_TimeRestriction(t *testing.T) {
	sc := newContext("08:00", "18:00", 60, 30)
	sc.Service.TimeRestriction = &domain.TimeWindow{Start: "10:00", End: "13:00"}

	res, err := NewComputer(DefaultPolicy()).Compute(sc, capacity.DayLoad{}, dayBefore)

	require.NoError(t, err)
	assert.Equal(t, slots("10:00", "11:00", "12:00", "13:00"), res.Slots)
	for _, s := range res.Slots {
		assert.True(t, sc.Service.TimeRestriction.Contains(s))
	}
}

func TestCompute_BlockedSlots(t *testing.T) {
	sc := newContext("09:00", "12:00", 60, 30)
	sc.BlockedDate = &domain.BlockedDate{BlockedSlots: slots("10:00")}

	res, err := NewComputer(DefaultPolicy()).Compute(sc, capacity.DayLoad{}, dayBefore)

	require.NoError(t, err)
	assert.Equal(t, slots("09:00", "11:00"), res.Slots)
}

func TestCompute_CustomMorningSlots(t *testing.T) {
	sc := newContext("08:00", "12:00", 60, 30)
	sc.Dealership.CustomMorningSlots = slots("07:30", "08:15", "08:45")
	sc.Dealership.RegularSlotsStartTime = ptr.Ptr(types.TimeString("10:00"))

	res, err := NewComputer(DefaultPolicy()).Compute(sc, capacity.DayLoad{}, dayBefore)

	require.NoError(t, err)
	assert.Equal(t, slots("08:15", "08:45", "10:00", "11:00"), res.Slots)
}

func TestCandidates_GridFromOpeningWhenNoCustomProduced(t *testing.T) {
	sc := newContext("08:00", "11:00", 60, 30)
	sc.Dealership.CustomMorningSlots = slots("07:00")
	sc.Dealership.RegularSlotsStartTime = ptr.Ptr(types.TimeString("10:00"))

	candidates, err := Candidates(sc)

	require.NoError(t, err)
	assert.Equal(t, slots("08:00", "09:00", "10:00"), candidates)
}

func TestCompute_RegularGridNeverBeforeOpening(t *testing.T) {
	sc := newContext("09:00", "11:00", 30, 30)
	sc.Dealership.CustomMorningSlots = slots("09:00")
	sc.Dealership.RegularSlotsStartTime = ptr.Ptr(types.TimeString("08:00"))

	res, err := NewComputer(DefaultPolicy()).Compute(sc, capacity.DayLoad{}, dayBefore)

	require.NoError(t, err)
	assert.Equal(t, slots("09:00", "09:30", "10:00"), res.Slots)
	for _, slot := range res.Slots {
		assert.Equal(t, SlotOK, CheckWithinHours(sc.Schedule, slot))
	}
}

func TestCandidates_RegularGridKeepsPhaseAfterOpening(t *testing.T) {
	sc := newContext("09:00", "11:00", 30, 30)
	sc.Dealership.CustomMorningSlots = slots("09:00")
	sc.Dealership.RegularSlotsStartTime = ptr.Ptr(types.TimeString("08:15"))

	candidates, err := Candidates(sc)

	require.NoError(t, err)
	assert.Equal(t, slots("09:00", "09:15", "09:45", "10:15", "10:45"), candidates)
}

func TestCandidates_OpeningEqualsClosing(t *testing.T) {
	sc := newContext("10:00", "10:00", 30, 30)
	sc.Dealership.CustomMorningSlots = slots("10:00")

	candidates, err := Candidates(sc)

	require.NoError(t, err)
	assert.Equal(t, slots("10:00"), candidates)
}

func TestCompute_InvalidShiftDuration(t *testing.T) {
	for _, shift := range []int{0, -30} {
		sc := newContext("09:00", "18:00", shift, 30)

		_, err := NewComputer(DefaultPolicy()).Compute(sc, capacity.DayLoad{}, dayBefore)

		assert.ErrorIs(t, err, ErrInvalidShiftDuration)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	sc := newContext("09:00", "18:00", 30, 45)
	sc.Schedule.MaxSimultaneousServices = 2
	load := capacity.DayLoad{Bookings: []*domain.Booking{active("09:00", 60), active("09:30", 90)}}
	computer := NewComputer(DefaultPolicy())

	first, err := computer.Compute(sc, load, dayBefore)
	require.NoError(t, err)
	second, err := computer.Compute(sc, load, dayBefore)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// fallbackContext каждый кандидат пересекается с бронированием при вместимости 1,
// но суммарно свободно 135 минут из 180.
func fallbackContext() (domain.SchedulingContext, capacity.DayLoad) {
	sc := newContext("09:00", "12:00", 60, 30)
	sc.Schedule.MaxSimultaneousServices = 1
	sc.Schedule.ReceptionEndTime = ptr.Ptr(types.TimeString("11:00"))
	load := capacity.DayLoad{Bookings: []*domain.Booking{
		active("09:15", 15),
		active("10:15", 15),
		active("11:15", 15),
	}}
	return sc, load
}

// Вынужденный слот намеренно предлагается, хотя CheckSlot отвергает его по пересечению.
func TestCompute_ReceptionFallback(t *testing.T) {
	sc, load := fallbackContext()

	res, err := NewComputer(DefaultPolicy()).Compute(sc, load, dayBefore)

	require.NoError(t, err)
	assert.True(t, res.FallbackApplied)
	assert.Equal(t, slots("11:00"), res.Slots)
	assert.Equal(t, SlotOverlapFull, CheckSlot(sc, load, "11:00", dayBefore))
}

func TestCompute_ReceptionFallbackDisabled(t *testing.T) {
	sc, load := fallbackContext()

	res, err := NewComputer(Policy{ReceptionFallback: false}).Compute(sc, load, dayBefore)

	require.NoError(t, err)
	assert.False(t, res.FallbackApplied)
	assert.Empty(t, res.Slots)
	assert.Equal(t, domain.ReasonNone, res.Reason)
}

func TestCompute_ReceptionFallbackSkippedWhenReceptionPassed(t *testing.T) {
	sc, load := fallbackContext()
	now := time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC)

	res, err := NewComputer(DefaultPolicy()).Compute(sc, load, now)

	require.NoError(t, err)
	assert.False(t, res.FallbackApplied)
	assert.Empty(t, res.Slots)
}

func TestCompute_ReceptionFallbackNeedsCapacity(t *testing.T) {
	sc, load := fallbackContext()
	load.Bookings = append(load.Bookings, active("09:00", 120))

	res, err := NewComputer(DefaultPolicy()).Compute(sc, load, dayBefore)

	require.NoError(t, err)
	assert.False(t, res.FallbackApplied)
	assert.Empty(t, res.Slots)
}

func TestCheckWithinHours(t *testing.T) {
	schedule := &domain.OperatingSchedule{OpeningTime: "09:00", ClosingTime: "18:00"}

	assert.Equal(t, SlotOK, CheckWithinHours(schedule, "09:00"))
	assert.Equal(t, SlotBeforeOpening, CheckWithinHours(schedule, "08:59"))
	assert.Equal(t, SlotOverrunsClosing, CheckWithinHours(schedule, "18:00"))
}

func TestSlotFailures_CollectsAllRules(t *testing.T) {
	sc := newContext("09:00", "12:00", 30, 30)
	sc.Schedule.MaxSimultaneousServices = 1
	sc.Service.TimeRestriction = &domain.TimeWindow{Start: "09:00", End: "10:00"}
	load := capacity.DayLoad{Bookings: []*domain.Booking{active("11:00", 30)}}

	failures := SlotFailures(sc, load, "11:00", dayBefore)

	assert.Equal(t, []SlotVerdict{SlotOverlapFull, SlotOutsideRestriction}, failures)
	assert.Equal(t, SlotOverlapFull, CheckSlot(sc, load, "11:00", dayBefore))
}

func TestOnGrid(t *testing.T) {
	sc := newContext("09:00", "12:00", 30, 30)
	sc.Dealership.CustomMorningSlots = slots("09:10")

	for _, tt := range []struct {
		slot string
		want bool
	}{
		{slot: "09:10", want: true},
		{slot: "09:00", want: true},
		{slot: "10:30", want: true},
		{slot: "10:07", want: false},
		{slot: "12:00", want: false},
	} {
		got, err := OnGrid(sc, types.TimeString(tt.slot))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.slot)
	}

	sc.Dealership.ShiftDurationMinutes = 0
	_, err := OnGrid(sc, "09:00")
	assert.ErrorIs(t, err, ErrInvalidShiftDuration)
}
