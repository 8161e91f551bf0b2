package models

import (
	"time"

	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
)

// UpdateDealershipConfigRequest запрос на замену конфигурации дилера
type UpdateDealershipConfigRequest struct {
	ShiftDurationMinutes  int      `json:"shiftDurationMinutes"`            // Шаг сетки слотов
	Timezone              string   `json:"timezone"`                        // IANA, например "Asia/Dubai"
	CustomMorningSlots    []string `json:"customMorningSlots,omitempty"`    // По возрастанию, "HH:MM"
	RegularSlotsStartTime *string  `json:"regularSlotsStartTime,omitempty"` // Начало сетки после кастомных слотов
	IsPrivileged          bool     `json:"-"`
}

// BlockedDateRequest запрос на создание или замену блокировки даты
type BlockedDateRequest struct {
	WorkshopID           *int64   `json:"workshopId,omitempty"` // NULL = для всего дилера
	Date                 string   `json:"date"`                 // "2025-10-15"
	FullDay              bool     `json:"fullDay"`
	BlockedSlots         []string `json:"blockedSlots,omitempty"`
	MaxTotalAppointments *int     `json:"maxTotalAppointments,omitempty"` // 0 = день закрыт
	Reason               *string  `json:"reason,omitempty"`
	IsPrivileged         bool     `json:"-"`
}

// DealershipConfigResponse ответ с конфигурацией дилера
type DealershipConfigResponse struct {
	DealershipID          int64      `json:"dealershipId"`
	ShiftDurationMinutes  int        `json:"shiftDurationMinutes"`
	Timezone              string     `json:"timezone"`
	CustomMorningSlots    []string   `json:"customMorningSlots"`
	RegularSlotsStartTime *string    `json:"regularSlotsStartTime,omitempty"`
	IsDefault             bool       `json:"isDefault"` // Сохраненной конфигурации нет
	UpdatedAt             *time.Time `json:"updatedAt,omitempty"`
}

// BlockedDateResponse ответ с блокировкой даты
type BlockedDateResponse struct {
	ID                   int64    `json:"id"`
	DealershipID         int64    `json:"dealershipId"`
	WorkshopID           *int64   `json:"workshopId,omitempty"`
	Date                 string   `json:"date"`
	FullDay              bool     `json:"fullDay"`
	BlockedSlots         []string `json:"blockedSlots"`
	MaxTotalAppointments *int     `json:"maxTotalAppointments,omitempty"`
	Reason               *string  `json:"reason,omitempty"`
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.DealershipConfiguration, isDefault bool) *DealershipConfigResponse {
	resp := &DealershipConfigResponse{
		DealershipID:         c.DealershipID,
		ShiftDurationMinutes: c.ShiftDurationMinutes,
		Timezone:             c.Timezone,
		CustomMorningSlots:   make([]string, 0, len(c.CustomMorningSlots)),
		IsDefault:            isDefault,
	}
	for _, s := range c.CustomMorningSlots {
		resp.CustomMorningSlots = append(resp.CustomMorningSlots, s.String())
	}
	if c.RegularSlotsStartTime != nil {
		start := c.RegularSlotsStartTime.String()
		resp.RegularSlotsStartTime = &start
	}
	if !c.UpdatedAt.IsZero() {
		updatedAt := c.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// FromDomainBlockedDate конвертирует domain модель в DTO
func FromDomainBlockedDate(b *domain.BlockedDate) *BlockedDateResponse {
	resp := &BlockedDateResponse{
		ID:                   b.ID,
		DealershipID:         b.DealershipID,
		WorkshopID:           b.WorkshopID,
		Date:                 b.Date.Format(domain.DateFormat),
		FullDay:              b.FullDay,
		BlockedSlots:         make([]string, 0, len(b.BlockedSlots)),
		MaxTotalAppointments: b.MaxTotalAppointments,
		Reason:               b.Reason,
	}
	for _, s := range b.BlockedSlots {
		resp.BlockedSlots = append(resp.BlockedSlots, s.String())
	}
	return resp
}
