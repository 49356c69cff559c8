package calendar

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/calendar"
)

// CalendarRepository интерфейс репозитория календаря слотов
type CalendarRepository interface {
	Get(ctx context.Context) (*calendarRepo.Calendar, error)
	Upsert(ctx context.Context, slots []string) (*calendarRepo.Calendar, error)
}

// SlotsCache кэш списка слотов
type SlotsCache interface {
	Invalidate(ctx context.Context) error
}

// AuthGate проверка прав
type AuthGate interface {
	Require(ctx context.Context, userID int64, roles ...domain.Role) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
