package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WorkshopBooking/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopBooking/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/SMC-WorkshopBooking/internal/usecase/get_available_slots"
)

const (
	msgInvalidDealershipID = "некорректный ID дилера"
	msgInvalidWorkshopID   = "некорректный ID мастерской"
	msgInvalidServiceID    = "некорректный ID услуги"
	msgMissingServiceID    = "ID услуги обязателен"
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput        = "ID дилера, мастерской и услуги должны быть положительными"
	msgPastDate            = "дата уже прошла"
	msgServiceNotFound     = "услуга не найдена"
	msgInvalidConfig       = "некорректная конфигурация расписания"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/dealerships/{dealershipId}/workshops/{workshopId}/available-slots
// Query params: serviceId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	dealershipID, err := strconv.ParseInt(vars["dealershipId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid dealership ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDealershipID)
		return
	}

	workshopID, err := strconv.ParseInt(vars["workshopId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid workshop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkshopID)
		return
	}

	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /available-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}
	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		DealershipID: dealershipID,
		WorkshopID:   workshopID,
		ServiceID:    serviceID,
		Date:         date,
		IsPrivileged: middleware.IsPrivileged(r.Context()),
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /available-slots - Invalid date: dealership_id=%d, date=%s, error=%v", dealershipID, date, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: dealership_id=%d, workshop_id=%d, error=%v", dealershipID, workshopID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrPastDate):
			h.logger.Warn("GET /available-slots - Past date: dealership_id=%d, date=%s", dealershipID, date)
			handlers.RespondAppError(w, http.StatusBadRequest, handlers.ErrorResponse{
				Message:   msgPastDate,
				ErrorCode: "PAST_DATE",
				Solution:  "выберите сегодняшнюю или будущую дату",
			})

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /available-slots - Service not found: dealership_id=%d, service_id=%d", dealershipID, serviceID)
			handlers.RespondAppError(w, http.StatusNotFound, handlers.ErrorResponse{
				Message:   msgServiceNotFound,
				ErrorCode: "SERVICE_NOT_FOUND",
				Solution:  "выберите активную услугу дилера",
			})

		case errors.Is(err, getAvailableSlots.ErrInvalidConfiguration):
			h.logger.Error("GET /available-slots - Invalid configuration: dealership_id=%d, workshop_id=%d, error=%v",
				dealershipID, workshopID, err)
			handlers.RespondAppError(w, http.StatusInternalServerError, handlers.ErrorResponse{
				Message:   msgInvalidConfig,
				ErrorCode: "INVALID_CONFIGURATION",
				Solution:  "обратитесь к сотрудникам дилера",
			})

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: dealership_id=%d, workshop_id=%d, service_id=%d, error=%v",
				dealershipID, workshopID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - Slots retrieved: dealership_id=%d, workshop_id=%d, service_id=%d, date=%s, slots=%d, reason=%s",
		dealershipID, workshopID, serviceID, date, result.TotalSlots, result.Reason)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
