package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"dealership_id",
	"workshop_id",
	"service_id",
	"client_id",
	"vehicle_id",
	"technician_id",
	"booking_date",
	"start_time",
	"duration_minutes",
	"status",
	"channel",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет бронирование одним INSERT.
// Гонку двух подтверждений на один слот разрешает уникальный индекс uq_bookings_vehicle_slot:
// проигравший получает ErrDuplicateBooking.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"dealership_id",
			"workshop_id",
			"service_id",
			"client_id",
			"vehicle_id",
			"technician_id",
			"booking_date",
			"start_time",
			"duration_minutes",
			"status",
			"channel",
			"notes",
		).
		Values(
			booking.DealershipID,
			booking.WorkshopID,
			booking.ServiceID,
			booking.ClientID,
			booking.VehicleID,
			booking.TechnicianID,
			booking.BookingDate.Format(domain.DateFormat),
			booking.StartTime,
			booking.DurationMinutes,
			booking.Status,
			booking.Channel,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, mapInsertError(err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID. Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetActiveByWorkshopAndDate активные бронирования мастерской на дату, по времени начала
func (r *Repository) GetActiveByWorkshopAndDate(ctx context.Context, workshopID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"workshop_id": workshopID}).
		Where(squirrel.Eq{"booking_date": date.Format(domain.DateFormat)}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByWorkshopAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByWorkshopAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountActiveByService количество активных бронирований услуги на дату по всему дилеру
func (r *Repository) CountActiveByService(ctx context.Context, dealershipID, serviceID int64, date time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"dealership_id": dealershipID,
			"service_id":    serviceID,
			"booking_date":  date.Format(domain.DateFormat),
		}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveByService - build query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveByService - scan: %v", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatus меняет статус. Для cancelled заполняет причину и время отмены.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})

	if status == domain.StatusCancelled {
		updateBuilder = updateBuilder.
			Set("cancellation_reason", reason).
			Set("cancelled_at", squirrel.Expr("now()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b                    domain.Booking
		technicianID         sql.NullInt64
		notes, cancelReason  sql.NullString
		cancelledAt          sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.DealershipID,
		&b.WorkshopID,
		&b.ServiceID,
		&b.ClientID,
		&b.VehicleID,
		&technicianID,
		&b.BookingDate,
		&b.StartTime,
		&b.DurationMinutes,
		&b.Status,
		&b.Channel,
		&notes,
		&cancelReason,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if technicianID.Valid {
		b.TechnicianID = &technicianID.Int64
	}
	if notes.Valid {
		b.Notes = &notes.String
	}
	if cancelReason.Valid {
		b.CancellationReason = &cancelReason.String
	}
	if cancelledAt.Valid {
		b.CancelledAt = &cancelledAt.Time
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows iteration: %v", ErrScanRow, err)
	}
	return bookings, nil
}
