package authz

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrUnknownCaller вызывающий не найден в хранилище пользователей
	ErrUnknownCaller = fmt.Errorf("%w: authz.service: unknown caller", domain.ErrPermissionDenied)

	// ErrForbidden роль вызывающего не входит в требуемый набор
	ErrForbidden = fmt.Errorf("%w: authz.service: role is not allowed", domain.ErrPermissionDenied)

	// ErrInternal ошибка чтения роли
	ErrInternal = fmt.Errorf("%w: authz.service", domain.ErrInternal)
)
