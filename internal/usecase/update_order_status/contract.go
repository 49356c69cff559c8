package update_order_status

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonService/internal/usecase/adjust_stock"
)

// OrderRepository заказы товаров
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ProductOrder, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.OrderStatus) error
}

// AdjustmentRepository проверка, было ли списание по ключу
type AdjustmentRepository interface {
	Exists(ctx context.Context, eventKey string) (bool, error)
}

// StockLedger журнал остатков
type StockLedger interface {
	Apply(ctx context.Context, adj domain.StockAdjustment) (*adjust_stock.Result, error)
	AfterCommit(ctx context.Context, results ...*adjust_stock.Result)
}

// AuthGate проверка прав
type AuthGate interface {
	Require(ctx context.Context, userID int64, roles ...domain.Role) (*domain.User, error)
}

// Notifier асинхронные уведомления
type Notifier interface {
	Notify(n notifier.Notification)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
