package domain

import (
	"time"

	"github.com/m04kA/SMC-WorkshopBooking/pkg/types"
)

// BlockedDate holiday or partial closure. WorkshopID == nil applies to the whole dealership.
type BlockedDate struct {
	ID                   int64
	DealershipID         int64
	WorkshopID           *int64
	Date                 time.Time
	FullDay              bool
	BlockedSlots         []types.TimeString
	MaxTotalAppointments *int // 0 = день закрыт, nil = без ограничения
	Reason               *string
}

// IsSlotBlocked returns true if t is listed in blocked slots
func (b *BlockedDate) IsSlotBlocked(t types.TimeString) bool {
	if b == nil {
		return false
	}
	for _, s := range b.BlockedSlots {
		if s == t {
			return true
		}
	}
	return false
}

// IsWorkshopSpecific returns true if the override targets one workshop
func (b *BlockedDate) IsWorkshopSpecific() bool {
	return b.WorkshopID != nil
}
