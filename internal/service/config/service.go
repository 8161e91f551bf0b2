package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
	"github.com/m04kA/SMC-WorkshopBooking/internal/infra/cache"
	dealershipRepo "github.com/m04kA/SMC-WorkshopBooking/internal/infra/storage/dealership"
	"github.com/m04kA/SMC-WorkshopBooking/internal/service/config/models"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/types"
)

// Service сервис настройки дилера: конфигурация сетки и блокировки дат
type Service struct {
	dealershipRepo DealershipRepository
	scheduleRepo   ScheduleRepository
	cache          Cache
	logger         Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	dealershipRepo DealershipRepository,
	scheduleRepo ScheduleRepository,
	cache Cache,
	logger Logger,
) *Service {
	return &Service{
		dealershipRepo: dealershipRepo,
		scheduleRepo:   scheduleRepo,
		cache:          cache,
		logger:         logger,
	}
}

// GetDealershipConfig возвращает конфигурацию дилера или значения по умолчанию
func (s *Service) GetDealershipConfig(ctx context.Context, dealershipID int64) (*models.DealershipConfigResponse, error) {
	s.logger.Info("GetDealershipConfig: dealership=%d", dealershipID)

	cfg, err := s.dealershipRepo.GetConfiguration(ctx, dealershipID)
	if err != nil {
		if errors.Is(err, dealershipRepo.ErrConfigNotFound) {
			def := domain.DefaultDealershipConfiguration(dealershipID)
			return models.FromDomainConfig(&def, true), nil
		}
		s.logger.Error("GetDealershipConfig: repository error for dealership=%d: %v", dealershipID, err)
		return nil, fmt.Errorf("%w: GetDealershipConfig - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(cfg, false), nil
}

// UpdateDealershipConfig заменяет конфигурацию дилера. Доступно только сотрудникам.
// Некорректные значения отклоняются до записи, чтобы вычисление слотов не падало на них.
func (s *Service) UpdateDealershipConfig(ctx context.Context, dealershipID int64, req *models.UpdateDealershipConfigRequest) (*models.DealershipConfigResponse, error) {
	s.logger.Info("UpdateDealershipConfig: dealership=%d, shift=%d, timezone=%s",
		dealershipID, req.ShiftDurationMinutes, req.Timezone)

	// 1. Проверяем права доступа
	if !req.IsPrivileged {
		s.logger.Warn("UpdateDealershipConfig: access denied for dealership=%d", dealershipID)
		return nil, ErrAccessDenied
	}

	// 2. Собираем и валидируем конфигурацию
	cfg, err := buildConfiguration(dealershipID, req)
	if err != nil {
		s.logger.Warn("UpdateDealershipConfig: validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем
	saved, err := s.dealershipRepo.UpsertConfiguration(ctx, cfg)
	if err != nil {
		s.logger.Error("UpdateDealershipConfig: repository error for dealership=%d: %v", dealershipID, err)
		return nil, fmt.Errorf("%w: UpdateDealershipConfig - repository error: %v", ErrInternal, err)
	}

	// 4. Сбрасываем кэш резолвера
	if err := s.cache.Delete(ctx, cache.DealershipConfigKey(dealershipID)); err != nil {
		s.logger.Error("UpdateDealershipConfig: failed to invalidate cache for dealership=%d: %v", dealershipID, err)
	}

	s.logger.Info("UpdateDealershipConfig: saved configuration for dealership=%d", dealershipID)
	return models.FromDomainConfig(saved, false), nil
}

// UpsertBlockedDate создает или заменяет блокировку даты. Доступно только сотрудникам.
func (s *Service) UpsertBlockedDate(ctx context.Context, dealershipID int64, req *models.BlockedDateRequest) (*models.BlockedDateResponse, error) {
	s.logger.Info("UpsertBlockedDate: dealership=%d, workshop=%v, date=%s, fullDay=%t",
		dealershipID, req.WorkshopID, req.Date, req.FullDay)

	if !req.IsPrivileged {
		s.logger.Warn("UpsertBlockedDate: access denied for dealership=%d", dealershipID)
		return nil, ErrAccessDenied
	}

	blocked, err := buildBlockedDate(dealershipID, req)
	if err != nil {
		s.logger.Warn("UpsertBlockedDate: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.scheduleRepo.UpsertBlockedDate(ctx, blocked)
	if err != nil {
		s.logger.Error("UpsertBlockedDate: repository error for dealership=%d: %v", dealershipID, err)
		return nil, fmt.Errorf("%w: UpsertBlockedDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertBlockedDate: saved blocked date id=%d", saved.ID)
	return models.FromDomainBlockedDate(saved), nil
}

func buildConfiguration(dealershipID int64, req *models.UpdateDealershipConfigRequest) (*domain.DealershipConfiguration, error) {
	slots, err := parseSlots(req.CustomMorningSlots)
	if err != nil {
		return nil, fmt.Errorf("%w: customMorningSlots: %v", ErrInvalidInput, err)
	}
	for i := 1; i < len(slots); i++ {
		if !slots[i-1].IsBefore(slots[i]) {
			return nil, fmt.Errorf("%w: customMorningSlots must be strictly ascending", ErrInvalidInput)
		}
	}

	cfg := &domain.DealershipConfiguration{
		DealershipID:         dealershipID,
		ShiftDurationMinutes: req.ShiftDurationMinutes,
		Timezone:             req.Timezone,
		CustomMorningSlots:   slots,
	}
	if req.RegularSlotsStartTime != nil {
		start, err := types.NewTimeStringFromString(*req.RegularSlotsStartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: regularSlotsStartTime: %v", ErrInvalidInput, err)
		}
		cfg.RegularSlotsStartTime = &start
	}
	if cfg.Timezone == "" {
		cfg.Timezone = domain.DefaultTimezone
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return cfg, nil
}

func buildBlockedDate(dealershipID int64, req *models.BlockedDateRequest) (*domain.BlockedDate, error) {
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if req.WorkshopID != nil && *req.WorkshopID <= 0 {
		return nil, fmt.Errorf("%w: workshopId must be positive", ErrInvalidInput)
	}
	if req.MaxTotalAppointments != nil && *req.MaxTotalAppointments < 0 {
		return nil, fmt.Errorf("%w: maxTotalAppointments must not be negative", ErrInvalidInput)
	}
	slots, err := parseSlots(req.BlockedSlots)
	if err != nil {
		return nil, fmt.Errorf("%w: blockedSlots: %v", ErrInvalidInput, err)
	}

	return &domain.BlockedDate{
		DealershipID:         dealershipID,
		WorkshopID:           req.WorkshopID,
		Date:                 date,
		FullDay:              req.FullDay,
		BlockedSlots:         slots,
		MaxTotalAppointments: req.MaxTotalAppointments,
		Reason:               req.Reason,
	}, nil
}

func parseSlots(raw []string) ([]types.TimeString, error) {
	slots := make([]types.TimeString, 0, len(raw))
	for _, s := range raw {
		ts, err := types.NewTimeStringFromString(s)
		if err != nil {
			return nil, err
		}
		slots = append(slots, ts)
	}
	return slots, nil
}
