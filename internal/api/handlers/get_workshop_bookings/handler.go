package get_workshop_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WorkshopBooking/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopBooking/internal/api/middleware"
	"github.com/m04kA/SMC-WorkshopBooking/internal/service/bookings"
	"github.com/m04kA/SMC-WorkshopBooking/internal/service/bookings/models"
)

const (
	msgInvalidDealershipID = "некорректный ID дилера"
	msgInvalidWorkshopID   = "некорректный ID мастерской"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgForbidden           = "расписание мастерской доступно только сотрудникам"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/dealerships/{dealershipId}/workshops/{workshopId}/bookings
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	dealershipID, err := strconv.ParseInt(vars["dealershipId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /workshops/{id}/bookings - Invalid dealership ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDealershipID)
		return
	}

	workshopID, err := strconv.ParseInt(vars["workshopId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /workshops/{id}/bookings - Invalid workshop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkshopID)
		return
	}

	result, err := h.service.ListWorkshopBookings(r.Context(), dealershipID, &models.ListWorkshopBookingsRequest{
		WorkshopID:   workshopID,
		Date:         r.URL.Query().Get("date"),
		IsPrivileged: middleware.IsPrivileged(r.Context()),
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /workshops/{id}/bookings - Access denied: dealership_id=%d", dealershipID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /workshops/{id}/bookings - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /workshops/{id}/bookings - Failed to list bookings: workshop_id=%d, error=%v", workshopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /workshops/{id}/bookings - Bookings retrieved: workshop_id=%d, count=%d", workshopID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
