package models

import (
	"time"

	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
)

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"` // Только для cancelled
	IsPrivileged       bool    `json:"-"`
}

// ListWorkshopBookingsRequest запрос расписания мастерской на дату
type ListWorkshopBookingsRequest struct {
	WorkshopID   int64
	Date         string // "2025-10-15"
	IsPrivileged bool
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Date     string             `json:"date"`
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	DealershipID    int64   `json:"dealershipId"`
	WorkshopID      int64   `json:"workshopId"`
	ServiceID       int64   `json:"serviceId"`
	ClientID        int64   `json:"clientId"`
	VehicleID       int64   `json:"vehicleId"`
	TechnicianID    *int64  `json:"technicianId,omitempty"`
	BookingDate     string  `json:"bookingDate"` // "2025-10-15"
	StartTime       string  `json:"startTime"`   // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Channel         string  `json:"channel"`
	Notes           *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		DealershipID:       b.DealershipID,
		WorkshopID:         b.WorkshopID,
		ServiceID:          b.ServiceID,
		ClientID:           b.ClientID,
		VehicleID:          b.VehicleID,
		TechnicianID:       b.TechnicianID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		Channel:            string(b.Channel),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}
