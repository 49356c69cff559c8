package run_sweeps

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonService/internal/usecase/update_order_status"
)

// BookingRepository выборка и пакетное обновление просроченных бронирований
type BookingRepository interface {
	ListDueIDs(ctx context.Context, status domain.BookingStatus, before time.Time, afterID int64, limit int) ([]int64, error)
	UpdateStatusBatch(ctx context.Context, ids []int64, from, to domain.BookingStatus) ([]int64, error)
	UpdateStatus(ctx context.Context, upd bookingRepo.StatusUpdate) error
}

// OrderRepository выборка невостребованных заказов
type OrderRepository interface {
	ListDueIDs(ctx context.Context, status domain.OrderStatus, updatedBefore time.Time, afterID int64, limit int) ([]int64, error)
}

// OrderTransitioner перевод заказа с возвратом остатков
type OrderTransitioner interface {
	Execute(ctx context.Context, req *update_order_status.Request) (*update_order_status.Response, error)
}

// Metrics счетчики sweep
type Metrics interface {
	ObserveSweep(sweep string, updated, failed int)
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
