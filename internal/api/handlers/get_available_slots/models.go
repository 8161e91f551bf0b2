package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-WorkshopBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date           string   `json:"date"`
	AvailableSlots []string `json:"available_slots"`
	TotalSlots     int      `json:"total_slots"`
	Reason         string   `json:"reason,omitempty"`  // Машиночитаемая причина пустого ответа
	Message        string   `json:"message,omitempty"` // Текст причины
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.AvailableSlots))
	for i, slot := range resp.AvailableSlots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:           resp.Date,
		AvailableSlots: slots,
		TotalSlots:     resp.TotalSlots,
		Reason:         string(resp.Reason),
		Message:        resp.Message,
	}
}
