package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopBooking/pkg/types"
)

func TestParseSlots(t *testing.T) {
	got, err := parseSlots([]string{"09:00", "13:30:00"})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "13:30"}, got)

	_, err = parseSlots([]string{"noon"})
	assert.ErrorIs(t, err, types.ErrInvalidTimeString)
}

func TestSlotStrings(t *testing.T) {
	assert.Equal(t, []string{"08:00", "12:45"}, slotStrings([]types.TimeString{"08:00", "12:45"}))
	assert.Empty(t, slotStrings(nil))
}
