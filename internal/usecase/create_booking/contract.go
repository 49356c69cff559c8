package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonService/internal/service/availability"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ServiceRepository каталог услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SalonService, error)
}

// Calendar рабочие слоты салона
type Calendar interface {
	AllSlots(ctx context.Context) (domain.SlotSet, error)
}

// TimeOffIndex поиск стилиста и проверка отгулов
type TimeOffIndex interface {
	ResolveStylist(ctx context.Context, ref availability.StylistRef) (*domain.User, error)
	IsUnavailableOn(ctx context.Context, stylistID int64, date time.Time) (bool, error)
}

// Occupancy занятые слоты стилиста
type Occupancy interface {
	OccupiedSlots(ctx context.Context, stylistID int64, date time.Time, slots domain.SlotSet) (availability.OccupiedSet, error)
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
