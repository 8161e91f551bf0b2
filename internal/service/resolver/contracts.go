package resolver

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
)

// DealershipRepository конфигурация и услуги дилера
type DealershipRepository interface {
	GetConfiguration(ctx context.Context, dealershipID int64) (*domain.DealershipConfiguration, error)
	GetService(ctx context.Context, dealershipID, serviceID int64) (*domain.Service, error)
}

// ScheduleRepository расписание мастерской и блокировки дат
type ScheduleRepository interface {
	GetOperatingHours(ctx context.Context, workshopID int64, dayOfWeek int) (*domain.OperatingSchedule, error)
	GetBlockedDate(ctx context.Context, dealershipID, workshopID int64, date time.Time) (*domain.BlockedDate, error)
}

// Cache read-through кэш конфигурации
type Cache interface {
	Get(ctx context.Context, key string, out any) bool
	Set(ctx context.Context, key string, val any)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
