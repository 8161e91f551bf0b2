package upsert_blocked_date

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
	msgForbidden           = "блокировать даты могут только сотрудники дилера"
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

// Handle PUT /api/v1/dealerships/{dealershipId}/blocked-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dealershipID, err := strconv.ParseInt(mux.Vars(r)["dealershipId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /blocked-dates - Invalid dealership ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDealershipID)
		return
	}

	var req models.BlockedDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.IsPrivileged = middleware.IsPrivileged(r.Context())

	result, err := h.service.UpsertBlockedDate(r.Context(), dealershipID, &req)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrAccessDenied):
			h.logger.Warn("PUT /blocked-dates - Access denied: dealership_id=%d", dealershipID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, config.ErrInvalidInput):
			h.logger.Warn("PUT /blocked-dates - Invalid input: dealership_id=%d, error=%v", dealershipID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /blocked-dates - Failed to save blocked date: dealership_id=%d, error=%v", dealershipID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /blocked-dates - Blocked date saved: dealership_id=%d, id=%d, date=%s", dealershipID, result.ID, result.Date)
	handlers.RespondJSON(w, http.StatusOK, result)
}
