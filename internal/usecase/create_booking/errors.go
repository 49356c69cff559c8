package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("%w: create_booking: service not found", domain.ErrNotFound)

	// ErrInvalidDate возвращается при некорректной или прошедшей дате бронирования
	ErrInvalidDate = fmt.Errorf("%w: create_booking: invalid booking date", domain.ErrInvalidArgument)

	// ErrInvalidTimeSlot возвращается, когда слота нет в календаре салона или он уже начался
	ErrInvalidTimeSlot = fmt.Errorf("%w: create_booking: invalid time slot", domain.ErrInvalidArgument)

	// ErrServiceDoesNotFit возвращается, когда услуга не помещается до конца рабочего дня
	ErrServiceDoesNotFit = fmt.Errorf("%w: create_booking: service does not fit before closing", domain.ErrInvalidArgument)

	// ErrStylistUnavailable возвращается, когда у стилиста одобренный отгул на эту дату
	ErrStylistUnavailable = fmt.Errorf("%w: create_booking: stylist is on time-off", domain.ErrConflict)

	// ErrSlotNotAvailable возвращается, когда хотя бы один из нужных слотов уже занят
	ErrSlotNotAvailable = fmt.Errorf("%w: create_booking: slot is not available", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_booking: invalid input data", domain.ErrInvalidArgument)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: create_booking", domain.ErrInternal)
)
