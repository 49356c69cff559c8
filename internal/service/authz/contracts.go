package authz

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// UserRepository источник ролей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
