package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateBooking нарушен уникальный индекс (vehicle_id, booking_date, start_time)
	ErrDuplicateBooking = errors.New("booking.repository: duplicate booking")

	// ErrForeignKeyViolation ссылка на несуществующую услугу, клиента, машину или мастера
	ErrForeignKeyViolation = errors.New("booking.repository: referenced entity does not exist")

	// ErrCheckViolation значения не прошли CHECK ограничение
	ErrCheckViolation = errors.New("booking.repository: check constraint violated")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
