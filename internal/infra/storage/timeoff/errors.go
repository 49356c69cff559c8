package timeoff

import "errors"

var (
	// ErrTimeOffNotFound возвращается, когда отгул не найден
	ErrTimeOffNotFound = errors.New("timeoff.repository: time-off not found")

	// ErrStatusChanged возвращается, когда условное обновление не нашло запись в ожидаемом статусе
	ErrStatusChanged = errors.New("timeoff.repository: time-off status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("timeoff.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("timeoff.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("timeoff.repository: failed to scan row")
)
