package tenantservice

import "errors"

var (
	// ErrWorkshopNotFound у дилера нет такой мастерской (или мастерской по умолчанию)
	ErrWorkshopNotFound = errors.New("tenantservice client: workshop not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("tenantservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("tenantservice client: invalid response")
)
