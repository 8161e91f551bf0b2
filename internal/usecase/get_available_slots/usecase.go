package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WorkshopBooking/internal/availability"
	"github.com/m04kA/SMC-WorkshopBooking/internal/calendar"
	"github.com/m04kA/SMC-WorkshopBooking/internal/capacity"
	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
	"github.com/m04kA/SMC-WorkshopBooking/internal/service/resolver"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/types"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	resolver    Resolver
	bookingRepo BookingRepository
	computer    *availability.Computer
	clock       calendar.Clock
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resolver Resolver,
	bookingRepo BookingRepository,
	computer *availability.Computer,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		resolver:    resolver,
		bookingRepo: bookingRepo,
		computer:    computer,
		clock:       calendar.RealClock{},
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: dealership=%d, workshop=%d, service=%d, date=%s",
		req.DealershipID, req.WorkshopID, req.ServiceID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Контекст планирования: конфигурация, услуга, расписание, блокировки
	sc, err := uc.resolver.Resolve(ctx, resolver.ResolveRequest{
		DealershipID: req.DealershipID,
		WorkshopID:   req.WorkshopID,
		ServiceID:    req.ServiceID,
		Date:         req.Date,
	})
	if err != nil {
		if errors.Is(err, resolver.ErrNotConfigured) {
			uc.logger.Info("GetAvailableSlots: no schedule for workshop=%d on %s", req.WorkshopID, req.Date)
			return emptyResponse(req.Date, domain.ReasonNoScheduleConfigured), nil
		}
		return nil, uc.mapResolveError(err)
	}

	// 3. Текущее время в часовом поясе дилера
	now := calendar.NowIn(uc.clock, sc.Location)

	// 4. Прошедшие даты доступны только сотрудникам
	if !req.IsPrivileged && calendar.IsPastDate(sc.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past for dealership=%d", req.Date, req.DealershipID)
		return nil, ErrPastDate
	}

	// 5. Загрузка мастерской на дату
	load, err := uc.dayLoad(ctx, sc)
	if err != nil {
		return nil, err
	}

	// 6. Вычисление слотов
	result, err := uc.computer.Compute(sc, load, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute slots for workshop=%d: %v", sc.WorkshopID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	uc.metrics.ObserveAvailableSlots(len(result.Slots))

	if result.Reason != domain.ReasonNone {
		uc.logger.Info("GetAvailableSlots: no slots for workshop=%d on %s: %s", sc.WorkshopID, req.Date, result.Reason)
		return emptyResponse(sc.DateString(), result.Reason), nil
	}

	uc.logger.Info("GetAvailableSlots: %d slots for workshop=%d, service=%d, date=%s (fallback=%t)",
		len(result.Slots), sc.WorkshopID, sc.Service.ID, sc.DateString(), result.FallbackApplied)

	return &Response{
		Date:            sc.DateString(),
		AvailableSlots:  result.Slots,
		TotalSlots:      len(result.Slots),
		FallbackApplied: result.FallbackApplied,
	}, nil
}

func (uc *UseCase) dayLoad(ctx context.Context, sc domain.SchedulingContext) (capacity.DayLoad, error) {
	bookings, err := uc.bookingRepo.GetActiveByWorkshopAndDate(ctx, sc.WorkshopID, sc.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for workshop=%d: %v", sc.WorkshopID, err)
		return capacity.DayLoad{}, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	count := 0
	if sc.Service.DailyLimit != nil {
		count, err = uc.bookingRepo.CountActiveByService(ctx, sc.DealershipID, sc.Service.ID, sc.Date)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to count bookings for service=%d: %v", sc.Service.ID, err)
			return capacity.DayLoad{}, fmt.Errorf("%w: failed to count service bookings: %v", ErrInternal, err)
		}
	}

	return capacity.DayLoad{Bookings: bookings, ServiceDailyCount: count}, nil
}

func (uc *UseCase) mapResolveError(err error) error {
	switch {
	case errors.Is(err, resolver.ErrServiceNotFound):
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return ErrServiceNotFound
	case errors.Is(err, resolver.ErrInvalidDate):
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	case errors.Is(err, resolver.ErrInvalidConfiguration):
		uc.logger.Error("GetAvailableSlots: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	default:
		uc.logger.Error("GetAvailableSlots: failed to resolve context: %v", err)
		return fmt.Errorf("%w: failed to resolve context: %v", ErrInternal, err)
	}
}

func emptyResponse(date string, reason domain.UnavailabilityReason) *Response {
	return &Response{
		Date:           date,
		AvailableSlots: []types.TimeString{},
		Reason:         reason,
		Message:        reason.Message(),
	}
}
