package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WorkshopBooking/internal/calendar"
	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
	"github.com/m04kA/SMC-WorkshopBooking/internal/infra/cache"
	dealershipRepo "github.com/m04kA/SMC-WorkshopBooking/internal/infra/storage/dealership"
	scheduleRepo "github.com/m04kA/SMC-WorkshopBooking/internal/infra/storage/schedule"
)

// ResolveRequest входные данные для построения контекста
type ResolveRequest struct {
	DealershipID int64
	WorkshopID   int64
	ServiceID    int64
	Date         string // YYYY-MM-DD в часовом поясе дилера
}

// Resolver собирает SchedulingContext из хранилища
type Resolver struct {
	dealerships DealershipRepository
	schedules   ScheduleRepository
	cache       Cache
	logger      Logger
}

// NewResolver создает резолвер. cache может быть nil.
func NewResolver(dealerships DealershipRepository, schedules ScheduleRepository, cache Cache, logger Logger) *Resolver {
	return &Resolver{
		dealerships: dealerships,
		schedules:   schedules,
		cache:       cache,
		logger:      logger,
	}
}

// Resolve строит контекст планирования для (дилер, мастерская, услуга, дата)
func (r *Resolver) Resolve(ctx context.Context, req ResolveRequest) (domain.SchedulingContext, error) {
	// 1. Конфигурация дилера и его часовой пояс
	cfg, err := r.dealershipConfiguration(ctx, req.DealershipID)
	if err != nil {
		return domain.SchedulingContext{}, err
	}
	if err := cfg.Validate(); err != nil {
		r.logger.Error("Resolve: invalid configuration for dealership=%d: %v", req.DealershipID, err)
		return domain.SchedulingContext{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return domain.SchedulingContext{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	// 2. Дата как полночь в часовом поясе дилера
	date, err := calendar.ParseDate(req.Date, loc)
	if err != nil {
		return domain.SchedulingContext{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	dayOfWeek := calendar.DayOfWeek(date)

	// 3. Услуга должна принадлежать дилеру
	service, err := r.service(ctx, req.DealershipID, req.ServiceID)
	if err != nil {
		return domain.SchedulingContext{}, err
	}
	if err := service.Validate(); err != nil {
		r.logger.Error("Resolve: invalid service id=%d: %v", req.ServiceID, err)
		return domain.SchedulingContext{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	// 4. Расписание на день недели
	schedule, err := r.schedules.GetOperatingHours(ctx, req.WorkshopID, dayOfWeek)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			r.logger.Warn("Resolve: no operating hours for workshop=%d day=%d", req.WorkshopID, dayOfWeek)
			return domain.SchedulingContext{}, ErrNotConfigured
		}
		r.logger.Error("Resolve: failed to get operating hours for workshop=%d: %v", req.WorkshopID, err)
		return domain.SchedulingContext{}, fmt.Errorf("%w: get operating hours: %v", ErrInternal, err)
	}
	if err := schedule.Validate(); err != nil {
		r.logger.Error("Resolve: invalid operating hours for workshop=%d day=%d: %v", req.WorkshopID, dayOfWeek, err)
		return domain.SchedulingContext{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	// 5. Блокировка даты (мастерской или всего дилера)
	blocked, err := r.schedules.GetBlockedDate(ctx, req.DealershipID, req.WorkshopID, date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrBlockedDateNotFound) {
		r.logger.Error("Resolve: failed to get blocked date for dealership=%d: %v", req.DealershipID, err)
		return domain.SchedulingContext{}, fmt.Errorf("%w: get blocked date: %v", ErrInternal, err)
	}

	return domain.SchedulingContext{
		DealershipID: req.DealershipID,
		WorkshopID:   req.WorkshopID,
		Dealership:   *cfg,
		Location:     loc,
		Service:      *service,
		Schedule:     schedule,
		BlockedDate:  blocked,
		Date:         date,
		DayOfWeek:    dayOfWeek,
	}, nil
}

// Location часовой пояс дилера (для проверок до полного построения контекста)
func (r *Resolver) Location(ctx context.Context, dealershipID int64) (*time.Location, error) {
	cfg, err := r.dealershipConfiguration(ctx, dealershipID)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return loc, nil
}

// dealershipConfiguration читает конфигурацию через кэш. Без сохраненной строки используются значения по умолчанию.
func (r *Resolver) dealershipConfiguration(ctx context.Context, dealershipID int64) (*domain.DealershipConfiguration, error) {
	key := cache.DealershipConfigKey(dealershipID)

	var cached domain.DealershipConfiguration
	if r.cache != nil && r.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	cfg, err := r.dealerships.GetConfiguration(ctx, dealershipID)
	if err != nil {
		if !errors.Is(err, dealershipRepo.ErrConfigNotFound) {
			r.logger.Error("Resolve: failed to get configuration for dealership=%d: %v", dealershipID, err)
			return nil, fmt.Errorf("%w: get configuration: %v", ErrInternal, err)
		}
		def := domain.DefaultDealershipConfiguration(dealershipID)
		cfg = &def
		r.logger.Info("Resolve: using default configuration for dealership=%d", dealershipID)
	}

	if r.cache != nil {
		r.cache.Set(ctx, key, cfg)
	}
	return cfg, nil
}

func (r *Resolver) service(ctx context.Context, dealershipID, serviceID int64) (*domain.Service, error) {
	key := cache.ServiceKey(dealershipID, serviceID)

	var cached domain.Service
	if r.cache != nil && r.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	service, err := r.dealerships.GetService(ctx, dealershipID, serviceID)
	if err != nil {
		if errors.Is(err, dealershipRepo.ErrServiceNotFound) {
			r.logger.Warn("Resolve: service id=%d not found for dealership=%d", serviceID, dealershipID)
			return nil, ErrServiceNotFound
		}
		r.logger.Error("Resolve: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		r.logger.Warn("Resolve: service id=%d is inactive", serviceID)
		return nil, ErrServiceNotFound
	}

	if r.cache != nil {
		r.cache.Set(ctx, key, service)
	}
	return service, nil
}
