package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/calendar"
)

// CalendarRepository хранилище календаря слотов
type CalendarRepository interface {
	Get(ctx context.Context) (*calendarRepo.Calendar, error)
}

// SlotsCache кэш списка слотов
type SlotsCache interface {
	Get(ctx context.Context) ([]string, error)
	Set(ctx context.Context, slots []string) error
}

// UserRepository поиск стилистов
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	FindByName(ctx context.Context, name string, role domain.Role) ([]*domain.User, error)
}

// TimeOffRepository одобренные отгулы
type TimeOffRepository interface {
	ListApprovedStartingBy(ctx context.Context, stylistID int64, date time.Time) ([]*domain.TimeOffRange, error)
}

// BookingRepository бронирования стилиста
type BookingRepository interface {
	GetByStylistWithFilter(ctx context.Context, filter domain.StylistBookingsFilter) ([]*domain.Booking, error)
}

// ServiceRepository каталог услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SalonService, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
