package timeoff

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrTimeOffNotFound возвращается, когда отгул не найден
	ErrTimeOffNotFound = fmt.Errorf("%w: timeoff.service: time-off not found", domain.ErrNotFound)

	// ErrStylistNotFound стилист не найден или не является стилистом
	ErrStylistNotFound = fmt.Errorf("%w: timeoff.service: stylist not found", domain.ErrNotFound)

	// ErrNotPending отгул уже рассмотрен
	ErrNotPending = fmt.Errorf("%w: timeoff.service: time-off is not pending", domain.ErrInvalidState)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: timeoff.service: invalid input data", domain.ErrInvalidArgument)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: timeoff.service", domain.ErrInternal)
)
