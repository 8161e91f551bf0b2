package directory

import "errors"

var (
	ErrClientNotFound     = errors.New("directory.repository: client not found")
	ErrVehicleNotFound    = errors.New("directory.repository: vehicle not found")
	ErrTechnicianNotFound = errors.New("directory.repository: technician not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("directory.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("directory.repository: failed to scan row")
)
