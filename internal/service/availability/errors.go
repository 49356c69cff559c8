package availability

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrCalendarNotConfigured календарь салона не задан; вызывающие считают это фатальной ошибкой конфигурации
	ErrCalendarNotConfigured = fmt.Errorf("%w: availability.service: salon calendar is not configured", domain.ErrNotFound)

	// ErrStylistNotFound стилист не найден по ID или имени
	ErrStylistNotFound = fmt.Errorf("%w: availability.service: stylist not found", domain.ErrNotFound)

	// ErrStylistAmbiguous по имени найдено несколько стилистов
	ErrStylistAmbiguous = fmt.Errorf("%w: availability.service: stylist name is ambiguous", domain.ErrNotFound)

	// ErrInvalidStylistRef не задан ни ID, ни имя стилиста
	ErrInvalidStylistRef = fmt.Errorf("%w: availability.service: stylist id or name is required", domain.ErrInvalidArgument)

	// ErrServiceNotFound услуга не найдена
	ErrServiceNotFound = fmt.Errorf("%w: availability.service: service not found", domain.ErrNotFound)

	// ErrInternal внутренняя ошибка
	ErrInternal = fmt.Errorf("%w: availability.service", domain.ErrInternal)
)
