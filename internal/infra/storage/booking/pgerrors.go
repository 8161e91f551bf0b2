package booking

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// SQLSTATE коды Postgres
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// VehicleSlotConstraint имя частичного уникального индекса бронирований
const VehicleSlotConstraint = "uq_bookings_vehicle_slot"

// mapInsertError переводит ошибку драйвера в ошибку репозитория
func mapInsertError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	switch string(pqErr.Code) {
	case pgUniqueViolation:
		return fmt.Errorf("%w: constraint %s", ErrDuplicateBooking, pqErr.Constraint)
	case pgForeignKeyViolation:
		return &ConstraintError{Err: ErrForeignKeyViolation, Constraint: pqErr.Constraint, Detail: pqErr.Detail}
	case pgCheckViolation:
		return &ConstraintError{Err: ErrCheckViolation, Constraint: pqErr.Constraint, Detail: pqErr.Detail}
	}
	return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
}

// ConstraintError нарушение ограничения с именем ограничения для понятного ответа клиенту
type ConstraintError struct {
	Err        error
	Constraint string
	Detail     string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%v: constraint=%s detail=%s", e.Err, e.Constraint, e.Detail)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}
