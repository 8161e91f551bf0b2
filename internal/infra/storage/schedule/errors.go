package schedule

import "errors"

var (
	// ErrScheduleNotFound строка расписания на день недели отсутствует
	ErrScheduleNotFound = errors.New("schedule.repository: operating hours not found")

	// ErrBlockedDateNotFound блокировка на дату отсутствует
	ErrBlockedDateNotFound = errors.New("schedule.repository: blocked date not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
