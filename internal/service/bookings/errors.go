package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено у дилера
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrAccessDenied возвращается, когда операция доступна только сотрудникам
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrInvalidTransition возвращается, когда переход статуса запрещен (в том числе из терминального)
	ErrInvalidTransition = errors.New("bookings: status transition not allowed")

	// ErrInvalidStatus возвращается при попытке установить неизвестный статус
	ErrInvalidStatus = errors.New("bookings: invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
