package update_order_status

import (
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/usecase/adjust_stock"
)

// Request модель запроса на смену статуса заказа
type Request struct {
	CallerID int64 // 0: системный вызов (sweep)
	OrderID  int64
	Target   domain.OrderStatus
}

// Response результат перехода
type Response struct {
	OrderID       int64
	Previous      domain.OrderStatus
	Status        domain.OrderStatus
	Changed       bool // false: заказ уже в терминальном статусе
	StockAdjusted int  // число позиций, по которым изменён остаток
}

type transition struct {
	order   *domain.ProductOrder
	results []*adjust_stock.Result
}
