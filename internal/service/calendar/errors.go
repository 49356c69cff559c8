package calendar

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrCalendarNotConfigured календарь салона ещё не задан
	ErrCalendarNotConfigured = fmt.Errorf("%w: calendar.service: salon calendar is not configured", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректном списке слотов
	ErrInvalidInput = fmt.Errorf("%w: calendar.service: invalid slots", domain.ErrInvalidArgument)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: calendar.service", domain.ErrInternal)
)
