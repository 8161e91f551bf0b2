package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
	"github.com/m04kA/SMC-WorkshopBooking/internal/service/resolver"
)

// Resolver интерфейс построения контекста планирования
type Resolver interface {
	Resolve(ctx context.Context, req resolver.ResolveRequest) (domain.SchedulingContext, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveByWorkshopAndDate активные бронирования мастерской на дату
	GetActiveByWorkshopAndDate(ctx context.Context, workshopID int64, date time.Time) ([]*domain.Booking, error)
	// CountActiveByService активные бронирования услуги на дату по всему дилеру
	CountActiveByService(ctx context.Context, dealershipID, serviceID int64, date time.Time) (int, error)
}

// Metrics интерфейс метрик доступности
type Metrics interface {
	ObserveAvailableSlots(count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
