package update_dealership_config

import (
	"context"

	"github.com/m04kA/SMC-WorkshopBooking/internal/service/config/models"
)

type ConfigService interface {
	UpdateDealershipConfig(ctx context.Context, dealershipID int64, req *models.UpdateDealershipConfigRequest) (*models.DealershipConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
