package config

import (
	"context"

	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
)

// DealershipRepository интерфейс репозитория конфигурации дилера
type DealershipRepository interface {
	GetConfiguration(ctx context.Context, dealershipID int64) (*domain.DealershipConfiguration, error)
	UpsertConfiguration(ctx context.Context, cfg *domain.DealershipConfiguration) (*domain.DealershipConfiguration, error)
}

// ScheduleRepository интерфейс репозитория блокировок дат
type ScheduleRepository interface {
	UpsertBlockedDate(ctx context.Context, b *domain.BlockedDate) (*domain.BlockedDate, error)
}

// Cache интерфейс кэша конфигурации
type Cache interface {
	Delete(ctx context.Context, keys ...string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
