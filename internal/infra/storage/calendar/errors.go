package calendar

import "errors"

var (
	// ErrCalendarNotConfigured возвращается, когда календарь слотов салона не задан
	ErrCalendarNotConfigured = errors.New("calendar.repository: salon calendar is not configured")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("calendar.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("calendar.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("calendar.repository: failed to scan row")
)
