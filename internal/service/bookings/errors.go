package bookings

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: bookings.service: booking not found", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: bookings.service: invalid input data", domain.ErrInvalidArgument)

	// ErrInvalidTimeRange возвращается при некорректном периоде
	ErrInvalidTimeRange = fmt.Errorf("%w: bookings.service: invalid time range", domain.ErrInvalidArgument)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: bookings.service", domain.ErrInternal)
)
