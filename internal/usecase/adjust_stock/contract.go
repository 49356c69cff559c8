package adjust_stock

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
)

// ProductRepository товары (чтение FOR UPDATE внутри транзакции)
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	UpdateVariants(ctx context.Context, productID int64, variants []domain.ProductVariant) error
}

// AdjustmentRepository журнал корректировок (ключи идемпотентности)
type AdjustmentRepository interface {
	TryInsert(ctx context.Context, adj *domain.StockAdjustment) (bool, error)
	GetByEventKey(ctx context.Context, eventKey string) (*domain.StockAdjustment, error)
}

// UserRepository список администраторов для уведомлений
type UserRepository interface {
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
}

// AuthGate проверка прав
type AuthGate interface {
	Require(ctx context.Context, userID int64, roles ...domain.Role) (*domain.User, error)
}

// Notifier асинхронные уведомления
type Notifier interface {
	Notify(n notifier.Notification)
}

// Metrics счётчик событий низкого остатка
type Metrics interface {
	ObserveLowStock(productID string)
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
