package run_sweeps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonService/internal/usecase/update_order_status"
)

// UseCase периодические задачи обслуживания статусов
//
// Каждая задача идемпотентна: обновления условны по исходному статусу,
// повторный запуск не находит кандидатов. Прерванный проход оставляет
// уже закоммиченные пачки.
type UseCase struct {
	bookingRepo  BookingRepository
	orderRepo    OrderRepository
	orders       OrderTransitioner
	metrics      Metrics
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	orderRepo OrderRepository,
	orders OrderTransitioner,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = domain.DefaultSweepBatch
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		orderRepo:    orderRepo,
		orders:       orders,
		metrics:      metrics,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Run запускает задачу по имени (ручной запуск администратором)
func (uc *UseCase) Run(ctx context.Context, sweep string) (*Result, error) {
	switch sweep {
	case SweepExpireSlots:
		return uc.ExpireSlots(ctx)
	case SweepAutoComplete:
		if !uc.cfg.AutoCompleteEnabled {
			return nil, fmt.Errorf("%w: %s", ErrSweepDisabled, sweep)
		}
		return uc.AutoComplete(ctx)
	case SweepAbandonOrders:
		return uc.AbandonOrders(ctx)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSweep, sweep)
	}
}

// AutoCompleteEnabled включено ли автозавершение
func (uc *UseCase) AutoCompleteEnabled() bool {
	return uc.cfg.AutoCompleteEnabled
}

// ExpireSlots закрывает бронирования, время начала которых прошло:
// pending -> expired, confirmed -> missed
func (uc *UseCase) ExpireSlots(ctx context.Context) (*Result, error) {
	now := uc.timeProvider.Now()
	result := &Result{Sweep: SweepExpireSlots}

	pending, err := uc.sweepBookings(ctx, now, domain.StatusPending, domain.StatusExpired)
	result.add(pending)
	if err != nil {
		return uc.finish(result), err
	}

	confirmed, err := uc.sweepBookings(ctx, now, domain.StatusConfirmed, domain.StatusMissed)
	result.add(confirmed)

	return uc.finish(result), err
}

// AutoComplete завершает подтверждённые бронирования, время начала которых прошло
func (uc *UseCase) AutoComplete(ctx context.Context) (*Result, error) {
	now := uc.timeProvider.Now()

	res, err := uc.sweepBookings(ctx, now, domain.StatusConfirmed, domain.StatusCompleted)
	res.Sweep = SweepAutoComplete

	return uc.finish(&res), err
}

// AbandonOrders отменяет заказы, не полученные за AbandonAfter после готовности
func (uc *UseCase) AbandonOrders(ctx context.Context) (*Result, error) {
	result := &Result{Sweep: SweepAbandonOrders}
	if uc.cfg.AbandonAfter <= 0 {
		return uc.finish(result), nil
	}

	cutoff := uc.timeProvider.Now().Add(-uc.cfg.AbandonAfter)
	var afterID int64

	for {
		if err := ctx.Err(); err != nil {
			return uc.finish(result), err
		}

		ids, err := uc.orderRepo.ListDueIDs(ctx, domain.OrderReadyForPickup, cutoff, afterID, uc.cfg.BatchSize)
		if err != nil {
			uc.logger.Error("AbandonOrders: failed to list candidates after id=%d: %v", afterID, err)
			return uc.finish(result), fmt.Errorf("%w: list orders: %w", ErrInternal, err)
		}
		if len(ids) == 0 {
			break
		}
		result.Scanned += len(ids)
		afterID = ids[len(ids)-1]

		// Каждый заказ своей транзакцией: возврат остатков привязан к заказу
		for _, id := range ids {
			resp, err := uc.orders.Execute(ctx, &update_order_status.Request{
				CallerID: domain.SystemUserID,
				OrderID:  id,
				Target:   domain.OrderAbandoned,
			})
			if err != nil {
				uc.logger.Error("AbandonOrders: order=%d: %v", id, err)
				result.Failed++
				continue
			}
			if resp.Changed {
				result.Updated++
			}
		}

		if len(ids) < uc.cfg.BatchSize {
			break
		}
	}

	return uc.finish(result), nil
}

// sweepBookings переводит from -> to пачками по BatchSize
// Неудачная пачка повторяется по одной записи, ошибки записей считаются в Failed.
func (uc *UseCase) sweepBookings(ctx context.Context, now time.Time, from, to domain.BookingStatus) (Result, error) {
	var (
		res     Result
		afterID int64
	)

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		ids, err := uc.bookingRepo.ListDueIDs(ctx, from, now, afterID, uc.cfg.BatchSize)
		if err != nil {
			uc.logger.Error("Sweep: failed to list %s bookings after id=%d: %v", from, afterID, err)
			return res, fmt.Errorf("%w: list bookings: %w", ErrInternal, err)
		}
		if len(ids) == 0 {
			return res, nil
		}
		res.Scanned += len(ids)
		afterID = ids[len(ids)-1]

		updated, err := uc.bookingRepo.UpdateStatusBatch(ctx, ids, from, to)
		if err == nil {
			res.Updated += len(updated)
		} else {
			uc.logger.Warn("Sweep: batch %s -> %s of %d failed, retrying one by one: %v", from, to, len(ids), err)
			for _, id := range ids {
				err := uc.bookingRepo.UpdateStatus(ctx, bookingRepo.StatusUpdate{ID: id, From: from, To: to})
				switch {
				case err == nil:
					res.Updated++
				case errors.Is(err, bookingRepo.ErrStatusChanged):
					// уже обработано другим участником
				default:
					uc.logger.Error("Sweep: booking=%d %s -> %s: %v", id, from, to, err)
					res.Failed++
				}
			}
		}

		if len(ids) < uc.cfg.BatchSize {
			return res, nil
		}
	}
}

func (uc *UseCase) finish(res *Result) *Result {
	uc.metrics.ObserveSweep(res.Sweep, res.Updated, res.Failed)
	uc.logger.Info("Sweep %s: scanned=%d, updated=%d, failed=%d", res.Sweep, res.Scanned, res.Updated, res.Failed)
	return res
}
