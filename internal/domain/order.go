package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus статус заказа товаров
type OrderStatus string

const (
	OrderPendingPickup  OrderStatus = "pending_pickup"
	OrderReadyForPickup OrderStatus = "ready_for_pickup"
	OrderCompleted      OrderStatus = "completed"
	OrderAbandoned      OrderStatus = "abandoned"
	OrderCancelled      OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPendingPickup:  {OrderReadyForPickup, OrderCancelled, OrderCompleted},
	OrderReadyForPickup: {OrderCompleted, OrderCancelled, OrderAbandoned},
}

// ParseOrderStatus проверяет статус заказа
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case OrderPendingPickup, OrderReadyForPickup, OrderCompleted, OrderAbandoned, OrderCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown order status %q", ErrInvalidArgument, s)
	}
}

// IsTerminal конечный статус заказа
func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderAbandoned || s == OrderCancelled
}

// ReleasesStock статусы, при переходе в которые товар возвращается на склад
func (s OrderStatus) ReleasesStock() bool {
	return s == OrderCancelled || s == OrderAbandoned
}

// CheckOrderTransition как CheckBookingTransition, но для заказов
func CheckOrderTransition(from, to OrderStatus) (noop bool, err error) {
	if from.IsTerminal() {
		return true, nil
	}
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return false, nil
		}
	}
	return false, fmt.Errorf("%w: order %s -> %s", ErrInvalidTransition, from, to)
}

// CartItem позиция заказа
type CartItem struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Size        string          `json:"size"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// ProductOrder заказ товаров с самовывозом из салона
type ProductOrder struct {
	ID         int64
	CustomerID int64
	Items      []CartItem
	TotalPrice decimal.Decimal
	Status     OrderStatus
	PaidAt     *time.Time
	Timestamp  time.Time
	UpdatedAt  time.Time
}

// IsPaid завершён оплатой
func (o *ProductOrder) IsPaid() bool {
	return o.Status == OrderCompleted && o.PaidAt != nil
}
