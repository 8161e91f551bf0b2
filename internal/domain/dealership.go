package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-WorkshopBooking/pkg/types"
)

// DealershipConfiguration per-tenant slot generation settings
type DealershipConfiguration struct {
	DealershipID          int64
	ShiftDurationMinutes  int
	Timezone              string
	CustomMorningSlots    []types.TimeString // в порядке появления в ответе
	RegularSlotsStartTime *types.TimeString
	UpdatedAt             time.Time
}

// Location resolves the IANA timezone of the tenant
func (c *DealershipConfiguration) Location() (*time.Location, error) {
	tz := c.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidConfiguration, c.Timezone)
	}
	return loc, nil
}

// Validate rejects values the slot generator cannot work with
func (c *DealershipConfiguration) Validate() error {
	if c.ShiftDurationMinutes <= 0 {
		return fmt.Errorf("%w: shift_duration must be positive, got %d", ErrInvalidConfiguration, c.ShiftDurationMinutes)
	}
	if c.ShiftDurationMinutes > MaxShiftDurationMinutes {
		return fmt.Errorf("%w: shift_duration exceeds %d", ErrInvalidConfiguration, MaxShiftDurationMinutes)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	for i, slot := range c.CustomMorningSlots {
		if err := slot.Validate(); err != nil {
			return fmt.Errorf("%w: custom slot #%d: %v", ErrInvalidConfiguration, i, err)
		}
	}
	if c.RegularSlotsStartTime != nil {
		if err := c.RegularSlotsStartTime.Validate(); err != nil {
			return fmt.Errorf("%w: regular_slots_start_time: %v", ErrInvalidConfiguration, err)
		}
	}
	return nil
}

// DefaultDealershipConfiguration configuration used for a tenant without a stored row
func DefaultDealershipConfiguration(dealershipID int64) DealershipConfiguration {
	return DealershipConfiguration{
		DealershipID:         dealershipID,
		ShiftDurationMinutes: DefaultShiftDurationMinutes,
		Timezone:             DefaultTimezone,
	}
}
