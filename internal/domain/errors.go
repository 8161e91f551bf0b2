package domain

import "errors"

var (
	// ErrInvalidSchedule возвращается, когда строка расписания нарушает порядок времен
	ErrInvalidSchedule = errors.New("domain: invalid operating schedule")

	// ErrInvalidConfiguration возвращается при некорректной конфигурации дилера
	ErrInvalidConfiguration = errors.New("domain: invalid dealership configuration")

	// ErrInvalidService возвращается при некорректных параметрах услуги
	ErrInvalidService = errors.New("domain: invalid service")
)
