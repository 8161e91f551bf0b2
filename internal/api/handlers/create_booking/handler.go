package create_booking

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WorkshopBooking/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopBooking/internal/api/middleware"
)

const (
	msgInvalidDealershipID = "некорректный ID дилера"
	msgInvalidRequestBody  = "некорректное тело запроса"
)

type Handler struct {
	useCase CreateBookingUseCase
	metrics Metrics
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, metrics Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle POST /api/v1/dealerships/{dealershipId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dealershipID, err := strconv.ParseInt(mux.Vars(r)["dealershipId"], 10, 64)
	if err != nil || dealershipID <= 0 {
		h.logger.Warn("POST /bookings - Invalid dealership ID: %q", mux.Vars(r)["dealershipId"])
		h.metrics.IncBookingRejected(handlers.CodeInvalidInput)
		handlers.RespondBadRequest(w, msgInvalidDealershipID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		h.metrics.IncBookingRejected(handlers.CodeInvalidInput)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	privileged := middleware.IsPrivileged(r.Context())
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(dealershipID, privileged))
	if err != nil {
		status, body := toErrorResponse(err)
		h.metrics.IncBookingRejected(body.ErrorCode)

		if status >= http.StatusInternalServerError {
			h.logger.Error("POST /bookings - Failed to create booking: request_id=%s, dealership_id=%d, vehicle_id=%d, date=%s, time=%s, error=%v",
				middleware.GetRequestID(r.Context()), dealershipID, req.VehicleID, req.Date, req.Time, err)
		} else {
			h.logger.Warn("POST /bookings - Booking rejected: dealership_id=%d, vehicle_id=%d, date=%s, time=%s, code=%s, error=%v",
				dealershipID, req.VehicleID, req.Date, req.Time, body.ErrorCode, err)
		}

		handlers.RespondAppError(w, status, body)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, dealership_id=%d, workshop_id=%d",
		result.ID, dealershipID, result.WorkshopID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
