package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/types"
)

// Repository расписание мастерских и блокировки дат
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetOperatingHours строка расписания мастерской на день недели (1 = воскресенье)
func (r *Repository) GetOperatingHours(ctx context.Context, workshopID int64, dayOfWeek int) (*domain.OperatingSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"workshop_id",
		"day_of_week",
		"is_working_day",
		"opening_time",
		"closing_time",
		"reception_end_time",
		"max_simultaneous_services",
		"max_arrivals_per_slot",
	).
		From("operating_hours").
		Where(squirrel.Eq{"workshop_id": workshopID, "day_of_week": dayOfWeek}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingHours - build select query: %v", ErrBuildQuery, err)
	}

	var (
		s            domain.OperatingSchedule
		receptionEnd types.TimeString
		maxArrivals  sql.NullInt64
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.WorkshopID,
		&s.DayOfWeek,
		&s.IsWorkingDay,
		&s.OpeningTime,
		&s.ClosingTime,
		&receptionEnd,
		&s.MaxSimultaneousServices,
		&maxArrivals,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingHours - scan: %v", ErrScanRow, err)
	}

	if !receptionEnd.IsZero() {
		s.ReceptionEndTime = &receptionEnd
	}
	if maxArrivals.Valid {
		v := int(maxArrivals.Int64)
		s.MaxArrivalsPerSlot = &v
	}

	return &s, nil
}

// GetBlockedDate блокировка на дату. Запись мастерской приоритетнее записи всего дилера.
func (r *Repository) GetBlockedDate(ctx context.Context, dealershipID, workshopID int64, date time.Time) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"dealership_id",
		"workshop_id",
		"blocked_date",
		"full_day",
		"blocked_slots",
		"max_total_appointments",
		"reason",
	).
		From("blocked_dates").
		Where(squirrel.Eq{"dealership_id": dealershipID, "blocked_date": date.Format(domain.DateFormat)}).
		Where(squirrel.Or{
			squirrel.Eq{"workshop_id": workshopID},
			squirrel.Eq{"workshop_id": nil},
		}).
		// NULLS LAST: строка конкретной мастерской идет первой
		OrderBy("workshop_id NULLS LAST").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedDate - build select query: %v", ErrBuildQuery, err)
	}

	var (
		b        domain.BlockedDate
		wsID     sql.NullInt64
		slots    []string
		maxTotal sql.NullInt64
		reason   sql.NullString
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.DealershipID,
		&wsID,
		&b.Date,
		&b.FullDay,
		pq.Array(&slots),
		&maxTotal,
		&reason,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlockedDateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedDate - scan: %v", ErrScanRow, err)
	}

	if wsID.Valid {
		b.WorkshopID = &wsID.Int64
	}
	if maxTotal.Valid {
		v := int(maxTotal.Int64)
		b.MaxTotalAppointments = &v
	}
	if reason.Valid {
		b.Reason = &reason.String
	}
	b.BlockedSlots, err = parseSlots(slots)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedDate - blocked_slots: %v", ErrScanRow, err)
	}

	return &b, nil
}

// UpsertBlockedDate создает или заменяет блокировку на дату
func (r *Repository) UpsertBlockedDate(ctx context.Context, b *domain.BlockedDate) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	conflict := "ON CONFLICT (dealership_id, blocked_date) WHERE workshop_id IS NULL"
	if b.WorkshopID != nil {
		conflict = "ON CONFLICT (dealership_id, workshop_id, blocked_date) WHERE workshop_id IS NOT NULL"
	}

	query, args, err := psqlbuilder.Insert("blocked_dates").
		Columns("dealership_id", "workshop_id", "blocked_date", "full_day", "blocked_slots", "max_total_appointments", "reason").
		Values(
			b.DealershipID,
			b.WorkshopID,
			b.Date.Format(domain.DateFormat),
			b.FullDay,
			pq.Array(slotStrings(b.BlockedSlots)),
			b.MaxTotalAppointments,
			b.Reason,
		).
		Suffix(conflict + " DO UPDATE SET full_day = EXCLUDED.full_day, blocked_slots = EXCLUDED.blocked_slots, " +
			"max_total_appointments = EXCLUDED.max_total_appointments, reason = EXCLUDED.reason RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertBlockedDate - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.ID); err != nil {
		return nil, fmt.Errorf("%w: UpsertBlockedDate - execute: %v", ErrExecQuery, err)
	}

	return b, nil
}

func parseSlots(raw []string) ([]types.TimeString, error) {
	out := make([]types.TimeString, 0, len(raw))
	for _, s := range raw {
		ts, err := types.NewTimeStringFromString(s)
		if err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, nil
}

func slotStrings(slots []types.TimeString) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}
