package transition_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: transition_booking: booking not found", domain.ErrNotFound)

	// ErrTargetNotAllowed статус нельзя выставить вручную (completed через оплату, expired через sweep)
	ErrTargetNotAllowed = fmt.Errorf("%w: transition_booking: target status cannot be set directly", domain.ErrInvalidArgument)

	// ErrReasonTooLong причина длиннее допустимого
	ErrReasonTooLong = fmt.Errorf("%w: transition_booking: reason is too long", domain.ErrInvalidArgument)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: transition_booking: invalid input data", domain.ErrInvalidArgument)

	// ErrConcurrentUpdate статус изменился между чтением и записью
	ErrConcurrentUpdate = fmt.Errorf("%w: transition_booking: booking status changed concurrently", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: transition_booking", domain.ErrInternal)
)
