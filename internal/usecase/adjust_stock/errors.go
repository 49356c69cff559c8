package adjust_stock

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrProductNotFound возвращается, когда товар не найден
	ErrProductNotFound = fmt.Errorf("%w: adjust_stock: product not found", domain.ErrNotFound)

	// ErrVariantNotFound возвращается, когда у товара нет варианта с таким ключом
	ErrVariantNotFound = fmt.Errorf("%w: adjust_stock: variant not found", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: adjust_stock: invalid input data", domain.ErrInvalidArgument)

	// ErrEventKeyConflict возвращается, когда ключ события уже занят другой корректировкой
	ErrEventKeyConflict = fmt.Errorf("%w: adjust_stock: event key is already used by another adjustment", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: adjust_stock", domain.ErrInternal)
)
