package stockadjustment

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("stockadjustment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("stockadjustment.repository: failed to execute query")

	// ErrAdjustmentNotFound возвращается, когда корректировки с ключом нет
	ErrAdjustmentNotFound = errors.New("stockadjustment.repository: adjustment not found")
)
