package notifier

import "time"

// EventTypeBookingCreated тип события о новой записи
const EventTypeBookingCreated = "booking.created"

// BookingCreatedEvent событие для сервиса подтверждений
type BookingCreatedEvent struct {
	EventID         string    `json:"event_id"`
	EventType       string    `json:"event_type"`
	OccurredAt      time.Time `json:"occurred_at"`
	BookingID       int64     `json:"booking_id"`
	DealershipID    int64     `json:"dealership_id"`
	WorkshopID      int64     `json:"workshop_id"`
	ServiceID       int64     `json:"service_id"`
	ClientID        int64     `json:"client_id"`
	VehicleID       int64     `json:"vehicle_id"`
	TechnicianID    *int64    `json:"technician_id,omitempty"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Channel         string    `json:"channel"`
}
