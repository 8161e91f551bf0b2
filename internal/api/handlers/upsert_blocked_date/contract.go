package upsert_blocked_date

import (
	"context"

	"github.com/m04kA/SMC-WorkshopBooking/internal/service/config/models"
)

type ConfigService interface {
	UpsertBlockedDate(ctx context.Context, dealershipID int64, req *models.BlockedDateRequest) (*models.BlockedDateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
