package finalize_payment

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrSourceNotFound бронирование или заказ не найдены
	ErrSourceNotFound = fmt.Errorf("%w: finalize_payment: source not found", domain.ErrNotFound)

	// ErrNotPayable запись в статусе, из которого оплата невозможна
	ErrNotPayable = fmt.Errorf("%w: finalize_payment: source cannot be paid in its current status", domain.ErrInvalidState)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: finalize_payment: invalid input data", domain.ErrInvalidArgument)

	// ErrConcurrentUpdate статус изменился между чтением и записью
	ErrConcurrentUpdate = fmt.Errorf("%w: finalize_payment: source status changed concurrently", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: finalize_payment", domain.ErrInternal)
)
