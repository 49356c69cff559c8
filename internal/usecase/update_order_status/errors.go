package update_order_status

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = fmt.Errorf("%w: update_order_status: order not found", domain.ErrNotFound)

	// ErrCompletionRequiresPayment завершение заказа выполняется через фиксацию оплаты
	ErrCompletionRequiresPayment = fmt.Errorf("%w: update_order_status: order is completed by payment", domain.ErrInvalidState)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: update_order_status: invalid input data", domain.ErrInvalidArgument)

	// ErrConcurrentUpdate статус изменился между чтением и записью
	ErrConcurrentUpdate = fmt.Errorf("%w: update_order_status: order status changed concurrently", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: update_order_status", domain.ErrInternal)
)
