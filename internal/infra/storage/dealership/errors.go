package dealership

import "errors"

var (
	// ErrConfigNotFound конфигурация дилера не сохранена
	ErrConfigNotFound = errors.New("dealership.repository: configuration not found")

	// ErrServiceNotFound услуга не найдена у этого дилера
	ErrServiceNotFound = errors.New("dealership.repository: service not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("dealership.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("dealership.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("dealership.repository: failed to scan row")
)
