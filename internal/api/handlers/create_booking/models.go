package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-WorkshopBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	WorkshopID   *int64  `json:"workshopId,omitempty"` // Без значения мастерскую выбирает сервис дилеров
	ServiceID    int64   `json:"serviceId"`
	ClientID     *int64  `json:"clientId,omitempty"`
	Phone        *string `json:"phone,omitempty"` // E.164, если clientId неизвестен
	VehicleID    int64   `json:"vehicleId"`
	TechnicianID *int64  `json:"technicianId,omitempty"`
	Date         string  `json:"date"` // "2025-10-15"
	Time         string  `json:"time"` // "10:00"
	Channel      string  `json:"channel"`
	Notes        *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                 int64   `json:"id"`
	DealershipID       int64   `json:"dealershipId"`
	WorkshopID         int64   `json:"workshopId"`
	ServiceID          int64   `json:"serviceId"`
	ClientID           int64   `json:"clientId"`
	VehicleID          int64   `json:"vehicleId"`
	TechnicianID       *int64  `json:"technicianId,omitempty"`
	BookingDate        string  `json:"bookingDate"`
	StartTime          string  `json:"startTime"`
	DurationMinutes    int     `json:"durationMinutes"`
	Status             string  `json:"status"`
	Channel            string  `json:"channel"`
	Notes              *string `json:"notes,omitempty"`
	AcceptedByFallback bool    `json:"acceptedByFallback,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(dealershipID int64, isPrivileged bool) *createBooking.Request {
	return &createBooking.Request{
		DealershipID: dealershipID,
		WorkshopID:   r.WorkshopID,
		ServiceID:    r.ServiceID,
		ClientID:     r.ClientID,
		Phone:        r.Phone,
		VehicleID:    r.VehicleID,
		TechnicianID: r.TechnicianID,
		Date:         r.Date,
		StartTime:    r.Time,
		Channel:      r.Channel,
		Notes:        r.Notes,
		IsPrivileged: isPrivileged,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                 resp.ID,
		DealershipID:       resp.DealershipID,
		WorkshopID:         resp.WorkshopID,
		ServiceID:          resp.ServiceID,
		ClientID:           resp.ClientID,
		VehicleID:          resp.VehicleID,
		TechnicianID:       resp.TechnicianID,
		BookingDate:        resp.BookingDate,
		StartTime:          resp.StartTime.String(),
		DurationMinutes:    resp.DurationMinutes,
		Status:             resp.Status,
		Channel:            resp.Channel,
		Notes:              resp.Notes,
		AcceptedByFallback: resp.AcceptedByFallback,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}
