package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
	"github.com/m04kA/SMC-WorkshopBooking/internal/integrations/tenantservice"
	"github.com/m04kA/SMC-WorkshopBooking/internal/service/resolver"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByWorkshopAndDate(ctx context.Context, workshopID int64, date time.Time) ([]*domain.Booking, error)
	CountActiveByService(ctx context.Context, dealershipID, serviceID int64, date time.Time) (int, error)
}

// DirectoryRepository интерфейс справочника клиентов, машин и мастеров
type DirectoryRepository interface {
	GetClient(ctx context.Context, dealershipID, clientID int64) (*domain.Client, error)
	GetClientByPhone(ctx context.Context, dealershipID int64, phone string) (*domain.Client, error)
	GetVehicle(ctx context.Context, vehicleID int64) (*domain.Vehicle, error)
	GetTechnician(ctx context.Context, dealershipID, technicianID int64) (*domain.Technician, error)
}

// Resolver интерфейс построения контекста планирования
type Resolver interface {
	Resolve(ctx context.Context, req resolver.ResolveRequest) (domain.SchedulingContext, error)
}

// TenantClient интерфейс клиента сервиса дилеров
type TenantClient interface {
	ResolveWorkshop(ctx context.Context, dealershipID int64, workshopID *int64) (*tenantservice.Workshop, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс отправки события о новой записи
type Notifier interface {
	BookingCreated(ctx context.Context, booking *domain.Booking) error
}

// Metrics интерфейс метрик бронирований
type Metrics interface {
	IncBookingCreated(channel string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
