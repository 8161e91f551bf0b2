package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена у дилера
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrPastDate возвращается, когда дата в прошлом, а вызывающий не сотрудник
	ErrPastDate = errors.New("get_available_slots: date is in the past")

	// ErrInvalidConfiguration возвращается, когда конфигурация дилера или расписание некорректны
	ErrInvalidConfiguration = errors.New("get_available_slots: invalid configuration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
