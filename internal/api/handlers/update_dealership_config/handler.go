package update_dealership_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WorkshopBooking/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopBooking/internal/api/middleware"
	"github.com/m04kA/SMC-WorkshopBooking/internal/service/config"
	"github.com/m04kA/SMC-WorkshopBooking/internal/service/config/models"
)

const (
	msgInvalidDealershipID = "некорректный ID дилера"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgForbidden           = "менять конфигурацию могут только сотрудники дилера"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/dealerships/{dealershipId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dealershipID, err := strconv.ParseInt(mux.Vars(r)["dealershipId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /dealerships/{id}/config - Invalid dealership ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDealershipID)
		return
	}

	var req models.UpdateDealershipConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /dealerships/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.IsPrivileged = middleware.IsPrivileged(r.Context())

	result, err := h.service.UpdateDealershipConfig(r.Context(), dealershipID, &req)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrAccessDenied):
			h.logger.Warn("PUT /dealerships/{id}/config - Access denied: dealership_id=%d", dealershipID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, config.ErrInvalidInput):
			h.logger.Warn("PUT /dealerships/{id}/config - Invalid config: dealership_id=%d, error=%v", dealershipID, err)
			handlers.RespondAppError(w, http.StatusBadRequest, handlers.ErrorResponse{
				Message:   err.Error(),
				ErrorCode: "INVALID_CONFIGURATION",
				Solution:  "шаг сетки больше нуля, часовой пояс IANA, кастомные слоты HH:MM по возрастанию",
			})

		default:
			h.logger.Error("PUT /dealerships/{id}/config - Failed to update config: dealership_id=%d, error=%v", dealershipID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /dealerships/{id}/config - Config updated: dealership_id=%d", dealershipID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
