package dealership

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/types"
)

// Repository конфигурация дилеров и их услуги
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetConfiguration конфигурация слотов дилера
func (r *Repository) GetConfiguration(ctx context.Context, dealershipID int64) (*domain.DealershipConfiguration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"dealership_id",
		"shift_duration_minutes",
		"timezone",
		"custom_morning_slots",
		"regular_slots_start_time",
		"updated_at",
	).
		From("dealership_configuration").
		Where(squirrel.Eq{"dealership_id": dealershipID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfiguration - build select query: %v", ErrBuildQuery, err)
	}

	var (
		cfg          domain.DealershipConfiguration
		customSlots  []string
		regularStart types.TimeString
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.DealershipID,
		&cfg.ShiftDurationMinutes,
		&cfg.Timezone,
		pq.Array(&customSlots),
		&regularStart,
		&cfg.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfiguration - scan: %v", ErrScanRow, err)
	}

	cfg.CustomMorningSlots = make([]types.TimeString, 0, len(customSlots))
	for _, s := range customSlots {
		ts, err := types.NewTimeStringFromString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: GetConfiguration - custom slot %q: %v", ErrScanRow, s, err)
		}
		cfg.CustomMorningSlots = append(cfg.CustomMorningSlots, ts)
	}
	if !regularStart.IsZero() {
		cfg.RegularSlotsStartTime = &regularStart
	}

	return &cfg, nil
}

// UpsertConfiguration сохраняет конфигурацию дилера
func (r *Repository) UpsertConfiguration(ctx context.Context, cfg *domain.DealershipConfiguration) (*domain.DealershipConfiguration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	slots := make([]string, 0, len(cfg.CustomMorningSlots))
	for _, s := range cfg.CustomMorningSlots {
		slots = append(slots, s.String())
	}

	query, args, err := psqlbuilder.Insert("dealership_configuration").
		Columns("dealership_id", "shift_duration_minutes", "timezone", "custom_morning_slots", "regular_slots_start_time").
		Values(cfg.DealershipID, cfg.ShiftDurationMinutes, cfg.Timezone, pq.Array(slots), cfg.RegularSlotsStartTime).
		Suffix("ON CONFLICT (dealership_id) DO UPDATE SET " +
			"shift_duration_minutes = EXCLUDED.shift_duration_minutes, " +
			"timezone = EXCLUDED.timezone, " +
			"custom_morning_slots = EXCLUDED.custom_morning_slots, " +
			"regular_slots_start_time = EXCLUDED.regular_slots_start_time, " +
			"updated_at = now() " +
			"RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertConfiguration - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&cfg.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertConfiguration - execute: %v", ErrExecQuery, err)
	}

	return cfg, nil
}

// GetService услуга дилера. Услуга другого дилера считается ненайденной.
func (r *Repository) GetService(ctx context.Context, dealershipID, serviceID int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"dealership_id",
		"name",
		"duration_minutes",
		"daily_limit",
		"available_days",
		"restriction_start_time",
		"restriction_end_time",
		"is_active",
	).
		From("services").
		Where(squirrel.Eq{"id": serviceID, "dealership_id": dealershipID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var (
		s                          domain.Service
		dailyLimit                 sql.NullInt64
		days                       pq.BoolArray
		restrictStart, restrictEnd types.TimeString
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.DealershipID,
		&s.Name,
		&s.DurationMinutes,
		&dailyLimit,
		&days,
		&restrictStart,
		&restrictEnd,
		&s.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan: %v", ErrScanRow, err)
	}

	if dailyLimit.Valid {
		v := int(dailyLimit.Int64)
		s.DailyLimit = &v
	}
	for i := 0; i < len(days) && i < domain.DaysInWeek; i++ {
		s.AvailableDays[i] = days[i]
	}
	if !restrictStart.IsZero() && !restrictEnd.IsZero() {
		s.TimeRestriction = &domain.TimeWindow{Start: restrictStart, End: restrictEnd}
	}

	return &s, nil
}
