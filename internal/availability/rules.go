package availability

import (
	"time"

	"github.com/m04kA/SMC-WorkshopBooking/internal/calendar"
	"github.com/m04kA/SMC-WorkshopBooking/internal/capacity"
	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/types"
)

// CheckDay проверки уровня дня в фиксированном порядке.
// Возвращает ReasonNone, если день открыт для записи на услугу.
func CheckDay(sc domain.SchedulingContext, load capacity.DayLoad) domain.UnavailabilityReason {
	// 1. Услуга не оказывается в этот день недели
	if !sc.Service.AvailableOn(sc.DayOfWeek) {
		return domain.ReasonServiceNotAvailableOnDay
	}

	// 2. Мастерская не работает
	if sc.Schedule == nil || !sc.Schedule.IsWorkingDay {
		return domain.ReasonDayNotWorking
	}

	// 3. День заблокирован целиком
	if sc.BlockedDate != nil && sc.BlockedDate.FullDay {
		return domain.ReasonDayBlocked
	}

	// 4. Дневной лимит услуги
	if limit := sc.Service.DailyLimit; limit != nil && load.ServiceDailyCount >= *limit {
		return domain.ReasonDailyLimitReached
	}

	return domain.ReasonNone
}

// CheckSlot проверяет одно время начала t и возвращает первое нарушенное правило.
// Предполагает, что CheckDay вернул ReasonNone.
func CheckSlot(sc domain.SchedulingContext, load capacity.DayLoad, t types.TimeString, now time.Time) SlotVerdict {
	failures := SlotFailures(sc, load, t, now)
	if len(failures) == 0 {
		return SlotOK
	}
	return failures[0]
}

// SlotFailures все нарушенные правила для t в порядке проверки
func SlotFailures(sc domain.SchedulingContext, load capacity.DayLoad, t types.TimeString, now time.Time) []SlotVerdict {
	schedule := sc.Schedule
	duration := sc.Service.DurationMinutes

	var failures []SlotVerdict

	if sc.BlockedDate.IsSlotBlocked(t) {
		failures = append(failures, SlotBlocked)
	}

	// Слоты на текущую или прошедшую минуту сегодня уже недоступны
	if calendar.IsToday(sc.Date, now) && t.Minutes() <= calendar.MinuteOfDay(now.In(sc.Date.Location())) {
		failures = append(failures, SlotInPast)
	}

	if schedule.ReceptionEndTime != nil && t.IsAfter(*schedule.ReceptionEndTime) {
		failures = append(failures, SlotAfterReception)
	}

	// Услуга должна закончиться строго до закрытия
	if t.Minutes()+duration >= schedule.ClosingTime.Minutes() {
		failures = append(failures, SlotOverrunsClosing)
	}

	if limit := schedule.MaxArrivalsPerSlot; limit != nil && capacity.CountAtExactTime(load.Bookings, t) >= *limit {
		failures = append(failures, SlotArrivalsFull)
	}

	if capacity.CountOverlapping(load.Bookings, t, duration) >= schedule.MaxSimultaneousServices {
		failures = append(failures, SlotOverlapFull)
	}

	if w := sc.Service.TimeRestriction; w != nil && !w.Contains(t) {
		failures = append(failures, SlotOutsideRestriction)
	}

	return failures
}

// OnGrid true, если t входит в кандидаты дня (кастомные слоты или регулярная сетка)
func OnGrid(sc domain.SchedulingContext, t types.TimeString) (bool, error) {
	candidates, err := Candidates(sc)
	if err != nil {
		return false, err
	}
	for _, c := range candidates {
		if c == t {
			return true, nil
		}
	}
	return false, nil
}

// CheckWithinHours независимая проверка, что t попадает в [opening, closing)
func CheckWithinHours(schedule *domain.OperatingSchedule, t types.TimeString) SlotVerdict {
	if t.IsBefore(schedule.OpeningTime) {
		return SlotBeforeOpening
	}
	if !t.IsBefore(schedule.ClosingTime) {
		return SlotOverrunsClosing
	}
	return SlotOK
}

// Candidates кандидаты в порядке проверки: кастомные утренние слоты, затем регулярная сетка
func Candidates(sc domain.SchedulingContext) ([]types.TimeString, error) {
	shift := sc.Dealership.ShiftDurationMinutes
	if shift <= 0 {
		return nil, ErrInvalidShiftDuration
	}

	opening := sc.Schedule.OpeningTime.Minutes()
	closing := sc.Schedule.ClosingTime.Minutes()
	if opening > closing {
		return nil, ErrInvalidSchedule
	}

	seen := make(map[types.TimeString]struct{})
	candidates := make([]types.TimeString, 0, len(sc.Dealership.CustomMorningSlots)+(closing-opening)/shift+1)

	// a. Кастомные слоты раньше открытия отбрасываются
	customProduced := false
	for _, slot := range sc.Dealership.CustomMorningSlots {
		if slot.Minutes() < opening {
			continue
		}
		if _, dup := seen[slot]; dup {
			continue
		}
		seen[slot] = struct{}{}
		candidates = append(candidates, slot)
		customProduced = true
	}

	// b. Регулярная сетка. Шаг сетки отсчитывается от ее начала, времена до открытия пропускаются.
	start := opening
	if customProduced && sc.Dealership.RegularSlotsStartTime != nil {
		start = sc.Dealership.RegularSlotsStartTime.Minutes()
	}
	for m := start; m < closing; m += shift {
		if m < opening {
			continue
		}
		slot := types.FromMinutes(m)
		if _, dup := seen[slot]; dup {
			continue
		}
		seen[slot] = struct{}{}
		candidates = append(candidates, slot)
	}

	return candidates, nil
}

// receptionPassed true, если время окончания приема уже прошло для даты контекста
func receptionPassed(sc domain.SchedulingContext, reception types.TimeString, now time.Time) bool {
	if calendar.IsPastDate(sc.Date, now) {
		return true
	}
	if calendar.IsToday(sc.Date, now) {
		return reception.Minutes() <= calendar.MinuteOfDay(now.In(sc.Date.Location()))
	}
	return false
}
