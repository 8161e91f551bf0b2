package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/psqlbuilder"
)

// Repository справочники клиентов, автомобилей и мастеров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetClient клиент дилера по ID
func (r *Repository) GetClient(ctx context.Context, dealershipID, clientID int64) (*domain.Client, error) {
	return r.getClient(ctx, squirrel.Eq{"id": clientID, "dealership_id": dealershipID})
}

// GetClientByPhone клиент дилера по номеру телефона
func (r *Repository) GetClientByPhone(ctx context.Context, dealershipID int64, phone string) (*domain.Client, error) {
	return r.getClient(ctx, squirrel.Eq{"phone": phone, "dealership_id": dealershipID})
}

func (r *Repository) getClient(ctx context.Context, where squirrel.Eq) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "dealership_id", "name", "phone").
		From("clients").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetClient - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Client
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.DealershipID, &c.Name, &c.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetClient - scan: %v", ErrScanRow, err)
	}

	return &c, nil
}

// GetVehicle автомобиль по ID
func (r *Repository) GetVehicle(ctx context.Context, vehicleID int64) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "client_id", "plate", "make", "model").
		From("vehicles").
		Where(squirrel.Eq{"id": vehicleID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetVehicle - build select query: %v", ErrBuildQuery, err)
	}

	var (
		v            domain.Vehicle
		brand, model sql.NullString
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&v.ID, &v.ClientID, &v.Plate, &brand, &model)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetVehicle - scan: %v", ErrScanRow, err)
	}

	if brand.Valid {
		v.Make = &brand.String
	}
	if model.Valid {
		v.Model = &model.String
	}

	return &v, nil
}

// GetTechnician мастер дилера по ID
func (r *Repository) GetTechnician(ctx context.Context, dealershipID, technicianID int64) (*domain.Technician, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "dealership_id", "workshop_id", "name", "is_active").
		From("technicians").
		Where(squirrel.Eq{"id": technicianID, "dealership_id": dealershipID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTechnician - build select query: %v", ErrBuildQuery, err)
	}

	var t domain.Technician
	err = executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.DealershipID, &t.WorkshopID, &t.Name, &t.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTechnicianNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTechnician - scan: %v", ErrScanRow, err)
	}

	return &t, nil
}
