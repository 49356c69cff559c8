package domain

import (
	"errors"

	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

// Категории ошибок. Ошибки слоёв оборачивают одну из них через %w,
// обработчики HTTP определяют код ответа по категории.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidState     = errors.New("invalid state")
	ErrConflict         = txmanager.ErrConflict
	ErrInternal         = errors.New("internal error")
)
