package finalize_payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonService/internal/usecase/adjust_stock"
)

// BookingRepository бронирования
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	MarkPaid(ctx context.Context, id int64, paidAt time.Time, amount decimal.Decimal) error
}

// OrderRepository заказы товаров
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ProductOrder, error)
	MarkPaid(ctx context.Context, id int64, from domain.OrderStatus, paidAt time.Time, amount decimal.Decimal) error
}

// IncomeRepository журнал доходов и счётчик
type IncomeRepository interface {
	Append(ctx context.Context, rec *domain.IncomeRecord) (bool, error)
	IncrementTotal(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error)
}

// StockLedger списание товаров заказа
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
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
