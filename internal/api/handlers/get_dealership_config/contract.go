package get_dealership_config

import (
	"context"

	"github.com/m04kA/SMC-WorkshopBooking/internal/service/config/models"
)

type ConfigService interface {
	GetDealershipConfig(ctx context.Context, dealershipID int64) (*models.DealershipConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
