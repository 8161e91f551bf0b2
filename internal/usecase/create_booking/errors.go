package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidChannel возвращается при неизвестном канале записи
	ErrInvalidChannel = errors.New("create_booking: invalid channel")

	// ErrWorkshopNotFound мастерская не найдена у дилера
	ErrWorkshopNotFound = errors.New("create_booking: workshop not found")

	// ErrClientNotFound клиент не найден у дилера
	ErrClientNotFound = errors.New("create_booking: client not found")

	// ErrVehicleNotOwned машина не найдена или принадлежит другому клиенту
	ErrVehicleNotOwned = errors.New("create_booking: vehicle does not belong to client")

	// ErrServiceNotFound услуга не найдена у дилера
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrTechnicianUnavailable мастер неактивен или работает в другой мастерской
	ErrTechnicianUnavailable = errors.New("create_booking: technician unavailable")

	// ErrPastDate дата или время уже прошли
	ErrPastDate = errors.New("create_booking: date is in the past")

	// ErrNotConfigured для дня недели нет расписания мастерской
	ErrNotConfigured = errors.New("create_booking: no schedule configured")

	// ErrInvalidConfiguration конфигурация дилера или расписание некорректны
	ErrInvalidConfiguration = errors.New("create_booking: invalid configuration")

	// ErrDayUnavailable день закрыт для записи на услугу
	ErrDayUnavailable = errors.New("create_booking: day is not available")

	// ErrSlotNotOffered время не проходит правила расписания
	ErrSlotNotOffered = errors.New("create_booking: slot is not offered")

	// ErrSlotFull слот заполнен
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrDailyLimitReached исчерпан дневной лимит услуги
	ErrDailyLimitReached = errors.New("create_booking: service daily limit reached")

	// ErrDailyTotalLimitExceeded исчерпан общий лимит записей на дату
	ErrDailyTotalLimitExceeded = errors.New("create_booking: daily total limit exceeded")

	// ErrDuplicateBooking машина уже записана на это время
	ErrDuplicateBooking = errors.New("create_booking: duplicate booking")

	// ErrReferenceNotFound запись ссылается на удаленную сущность
	ErrReferenceNotFound = errors.New("create_booking: referenced entity not found")

	// ErrInvalidBookingData данные записи не прошли ограничения хранилища
	ErrInvalidBookingData = errors.New("create_booking: invalid booking data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// CapacityError отказ по заполненности: текущее значение и лимит
type CapacityError struct {
	Err     error
	Current int
	Limit   int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: current=%d limit=%d", e.Err, e.Current, e.Limit)
}

func (e *CapacityError) Unwrap() error {
	return e.Err
}

// RuleError отказ по правилу: код причины дня, проверки слота или имя ограничения
type RuleError struct {
	Err  error
	Rule string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Rule)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}
