package resolver

import "errors"

var (
	// ErrNotConfigured для дня недели нет строки расписания
	ErrNotConfigured = errors.New("resolver: no operating hours configured for this weekday")

	// ErrServiceNotFound услуга не существует или принадлежит другому дилеру
	ErrServiceNotFound = errors.New("resolver: service not found")

	// ErrInvalidConfiguration конфигурация дилера, услуги или расписания некорректна
	ErrInvalidConfiguration = errors.New("resolver: invalid configuration")

	// ErrInvalidDate дата не в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("resolver: invalid date")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("resolver: internal error")
)
