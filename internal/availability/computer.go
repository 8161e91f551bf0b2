package availability

import (
	"time"

	"github.com/m04kA/SMC-WorkshopBooking/internal/capacity"
	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/types"
)

// Policy переключатели поведения вычислителя
type Policy struct {
	// ReceptionFallback добавляет время окончания приема как вынужденный слот, если
	// проверки отдельных слотов отвергли все кандидаты, а суммарной емкости дня хватает на услугу.
	// Такой слот может не пройти CheckSlot, поэтому подтверждение записи сверяется с FallbackSlot.
	ReceptionFallback bool
}

// DefaultPolicy политика по умолчанию
func DefaultPolicy() Policy {
	return Policy{ReceptionFallback: true}
}

// Result результат вычисления доступности
type Result struct {
	Slots           []types.TimeString
	Reason          domain.UnavailabilityReason
	FallbackApplied bool
}

// Computer вычисляет доступные слоты. Не имеет состояния и безопасен для конкурентного использования.
type Computer struct {
	policy Policy
}

// NewComputer создает вычислитель с политикой policy
func NewComputer(policy Policy) *Computer {
	return &Computer{policy: policy}
}

// Policy возвращает текущую политику
func (c *Computer) Policy() Policy {
	return c.policy
}

// Compute возвращает доступные времена начала для контекста sc.
// now должен быть в часовом поясе дилера; load содержит бронирования мастерской на дату.
func (c *Computer) Compute(sc domain.SchedulingContext, load capacity.DayLoad, now time.Time) (Result, error) {
	if sc.Dealership.ShiftDurationMinutes <= 0 {
		return Result{}, ErrInvalidShiftDuration
	}

	// Шаги 1-4
	if reason := CheckDay(sc, load); reason != domain.ReasonNone {
		return Result{Slots: []types.TimeString{}, Reason: reason}, nil
	}

	// Шаг 5
	candidates, err := Candidates(sc)
	if err != nil {
		return Result{}, err
	}

	// Шаг 6
	slots := make([]types.TimeString, 0, len(candidates))
	for _, t := range candidates {
		if CheckSlot(sc, load, t, now) == SlotOK {
			slots = append(slots, t)
		}
	}

	// Шаг 7
	if len(slots) == 0 {
		if fallback, ok := c.FallbackSlot(sc, load, now); ok {
			return Result{Slots: []types.TimeString{fallback}, FallbackApplied: true}, nil
		}
	}

	return Result{Slots: slots}, nil
}

// FallbackSlot вычисляет вынужденный слот по окончанию приема без учета того, приняты ли
// другие кандидаты. Используется Compute и при подтверждении записи на этот слот.
func (c *Computer) FallbackSlot(sc domain.SchedulingContext, load capacity.DayLoad, now time.Time) (types.TimeString, bool) {
	if !c.policy.ReceptionFallback {
		return "", false
	}

	schedule := sc.Schedule
	if schedule == nil || schedule.ReceptionEndTime == nil {
		return "", false
	}
	reception := *schedule.ReceptionEndTime
	duration := sc.Service.DurationMinutes

	if capacity.RemainingMinuteCapacity(schedule, load.Bookings) < duration {
		return "", false
	}
	if receptionPassed(sc, reception, now) {
		return "", false
	}
	if reception.Minutes()+duration > schedule.ClosingTime.Minutes() {
		return "", false
	}

	return reception, true
}
