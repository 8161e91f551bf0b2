package domain

import (
	"time"

	"github.com/m04kA/SMC-WorkshopBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// transitions допустимые переходы статусов. completed и cancelled терминальные.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// IsValid returns true for a known status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Channel the source through which a booking was made
type Channel string

const (
	ChannelWeb      Channel = "web"
	ChannelStaff    Channel = "staff"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelSMS      Channel = "sms"
	ChannelVoiceAI  Channel = "voice_ai"
	ChannelPhone    Channel = "phone"
)

// IsValid returns true for a known channel
func (c Channel) IsValid() bool {
	switch c {
	case ChannelWeb, ChannelStaff, ChannelWhatsApp, ChannelSMS, ChannelVoiceAI, ChannelPhone:
		return true
	}
	return false
}

// Booking represents a reserved service slot at a workshop
type Booking struct {
	ID              int64
	DealershipID    int64
	WorkshopID      int64
	ServiceID       int64
	ClientID        int64
	VehicleID       int64
	TechnicianID    *int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus
	Channel         Channel
	Notes           *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies capacity
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsTerminal returns true if no further status changes are allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanTransitionTo returns true if the booking may move to next
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range transitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// StartMinute minute of day the booking starts at
func (b *Booking) StartMinute() int {
	return b.StartTime.Minutes()
}

// EndMinute minute of day the booking ends at (may exceed 24*60)
func (b *Booking) EndMinute() int {
	return b.StartTime.Minutes() + b.DurationMinutes
}
