package booking

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapInsertError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "уникальный индекс",
			err:  &pq.Error{Code: "23505", Constraint: VehicleSlotConstraint},
			want: ErrDuplicateBooking,
		},
		{
			name: "внешний ключ",
			err:  &pq.Error{Code: "23503", Constraint: "bookings_vehicle_id_fkey"},
			want: ErrForeignKeyViolation,
		},
		{
			name: "check ограничение",
			err:  &pq.Error{Code: "23514", Constraint: "bookings_duration_minutes_check"},
			want: ErrCheckViolation,
		},
		{
			name: "прочая ошибка postgres",
			err:  &pq.Error{Code: "57014"},
			want: ErrExecQuery,
		},
		{
			name: "ошибка сети",
			err:  errors.New("connection reset"),
			want: ErrExecQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapInsertError(tt.err), tt.want)
		})
	}
}

func TestMapInsertError_KeepsConstraintName(t *testing.T) {
	err := mapInsertError(&pq.Error{Code: "23503", Constraint: "bookings_technician_id_fkey"})

	var ce *ConstraintError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "bookings_technician_id_fkey", ce.Constraint)
}
