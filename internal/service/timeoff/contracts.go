package timeoff

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
)

// TimeOffRepository интерфейс репозитория отгулов
type TimeOffRepository interface {
	Create(ctx context.Context, t *domain.TimeOffRange) (*domain.TimeOffRange, error)
	GetByID(ctx context.Context, id int64) (*domain.TimeOffRange, error)
	ListByStylist(ctx context.Context, stylistID int64) ([]*domain.TimeOffRange, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.TimeOffStatus) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository проверка, что стилист существует
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// AuthGate проверка прав
type AuthGate interface {
	Require(ctx context.Context, userID int64, roles ...domain.Role) (*domain.User, error)
	RequireOwnerOr(ctx context.Context, userID, ownerID int64, roles ...domain.Role) (*domain.User, error)
}

// Notifier асинхронные уведомления
type Notifier interface {
	Notify(n notifier.Notification)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
