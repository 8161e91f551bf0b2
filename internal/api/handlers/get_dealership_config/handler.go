package get_dealership_config

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WorkshopBooking/internal/api/handlers"
)

const msgInvalidDealershipID = "некорректный ID дилера"

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

// Handle GET /api/v1/dealerships/{dealershipId}/config
// Публичный endpoint: без сохраненной конфигурации возвращаются значения по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dealershipID, err := strconv.ParseInt(mux.Vars(r)["dealershipId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /dealerships/{id}/config - Invalid dealership ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDealershipID)
		return
	}

	result, err := h.service.GetDealershipConfig(r.Context(), dealershipID)
	if err != nil {
		h.logger.Error("GET /dealerships/{id}/config - Failed to get config: dealership_id=%d, error=%v", dealershipID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /dealerships/{id}/config - Config retrieved: dealership_id=%d, default=%t", dealershipID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
