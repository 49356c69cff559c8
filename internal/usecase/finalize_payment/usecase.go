package finalize_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	orderRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/order"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonService/internal/usecase/adjust_stock"
)

// UseCase фиксация оплаты бронирования или заказа
type UseCase struct {
	bookingRepo  BookingRepository
	orderRepo    OrderRepository
	incomeRepo   IncomeRepository
	ledger       StockLedger
	gate         AuthGate
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	orderRepo OrderRepository,
	incomeRepo IncomeRepository,
	ledger StockLedger,
	gate AuthGate,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		orderRepo:    orderRepo,
		incomeRepo:   incomeRepo,
		ledger:       ledger,
		gate:         gate,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute фиксирует оплату
//
// В одной сериализуемой транзакции: проверка роли (читается заново), чтение
// источника FOR UPDATE, проверка "уже оплачено", смена статуса и списание товаров.
// После коммита: запись дохода и увеличение общего счётчика.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FinalizePayment: caller=%d, source=%s:%d", req.CallerID, req.SourceType, req.SourceID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FinalizePayment: validation failed: %v", err)
		return nil, err
	}

	var p *payment
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := uc.gate.Require(txCtx, req.CallerID, domain.StaffRoles...); err != nil {
			return err
		}

		var err error
		switch req.SourceType {
		case domain.IncomeBooking:
			p, err = uc.payBooking(txCtx, req)
		case domain.IncomeOrder:
			p, err = uc.payOrder(txCtx, req)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := &Response{
		SourceType:       req.SourceType,
		SourceID:         req.SourceID,
		Amount:           p.amount,
		PaidAt:           p.paidAt,
		AlreadyProcessed: p.already,
	}

	if p.already {
		uc.logger.Info("FinalizePayment: %s:%d already paid at %s", req.SourceType, req.SourceID, p.paidAt)
	} else {
		uc.ledger.AfterCommit(ctx, p.stockResults...)
		uc.notifier.Notify(notifier.Notification{
			RecipientID:    p.customerID,
			Title:          "Оплата получена",
			Body:           fmt.Sprintf("Сумма: %s", p.amount.StringFixed(2)),
			LinkedRecordID: fmt.Sprintf("%s:%d", req.SourceType, req.SourceID),
		})
	}

	// Запись дохода идемпотентна (уникальна по источнику), поэтому выполняется
	// и для уже оплаченных записей: так восстанавливается запись, не сохранённая после сбоя.
	recorded, err := uc.recordIncome(ctx, req.SourceType, req.SourceID, p)
	if err != nil {
		uc.logger.Error("FinalizePayment: failed to record income for %s:%d: %v", req.SourceType, req.SourceID, err)
	}
	resp.IncomeRecorded = recorded

	return resp, nil
}

func (uc *UseCase) payBooking(ctx context.Context, req *Request) (*payment, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, req.SourceID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: booking id=%d", ErrSourceNotFound, req.SourceID)
		}
		uc.logger.Error("FinalizePayment: failed to get booking id=%d: %v", req.SourceID, err)
		return nil, fmt.Errorf("%w: get booking: %w", ErrInternal, err)
	}

	if booking.IsPaid() {
		amount := booking.ServicePrice
		if booking.AmountPaid.Valid {
			amount = booking.AmountPaid.Decimal
		}
		return &payment{customerID: booking.CustomerID, amount: amount, paidAt: *booking.PaidAt, already: true}, nil
	}

	if booking.Status != domain.StatusConfirmed {
		uc.logger.Warn("FinalizePayment: booking id=%d is %s", booking.ID, booking.Status)
		return nil, fmt.Errorf("%w: booking is %s", ErrNotPayable, booking.Status)
	}

	amount := booking.ServicePrice
	if req.Amount != nil {
		amount = *req.Amount
	}
	paidAt := uc.timeProvider.Now()

	if err := uc.bookingRepo.MarkPaid(ctx, booking.ID, paidAt, amount); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusChanged) {
			return nil, ErrConcurrentUpdate
		}
		uc.logger.Error("FinalizePayment: failed to mark booking id=%d paid: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: mark booking paid: %w", ErrInternal, err)
	}

	return &payment{customerID: booking.CustomerID, amount: amount, paidAt: paidAt}, nil
}

func (uc *UseCase) payOrder(ctx context.Context, req *Request) (*payment, error) {
	order, err := uc.orderRepo.GetByID(ctx, req.SourceID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return nil, fmt.Errorf("%w: order id=%d", ErrSourceNotFound, req.SourceID)
		}
		uc.logger.Error("FinalizePayment: failed to get order id=%d: %v", req.SourceID, err)
		return nil, fmt.Errorf("%w: get order: %w", ErrInternal, err)
	}

	if order.IsPaid() {
		return &payment{customerID: order.CustomerID, amount: order.TotalPrice, paidAt: *order.PaidAt, already: true}, nil
	}

	if order.Status != domain.OrderPendingPickup && order.Status != domain.OrderReadyForPickup {
		uc.logger.Warn("FinalizePayment: order id=%d is %s", order.ID, order.Status)
		return nil, fmt.Errorf("%w: order is %s", ErrNotPayable, order.Status)
	}

	amount := order.TotalPrice
	if req.Amount != nil {
		amount = *req.Amount
	}
	paidAt := uc.timeProvider.Now()

	// Списание по ключам выдачи: позиции, списанные при переходе в ready_for_pickup, не списываются повторно
	results := make([]*adjust_stock.Result, 0, len(order.Items))
	for i, item := range order.Items {
		res, err := uc.ledger.Apply(ctx, domain.StockAdjustment{
			EventKey:   domain.FulfilEventKey(order.ID, i),
			ProductID:  item.ProductID,
			VariantKey: item.Size,
			Delta:      -item.Quantity,
		})
		if err != nil {
			uc.logger.Error("FinalizePayment: failed to deduct stock for order id=%d item=%d: %v", order.ID, i, err)
			return nil, err
		}
		results = append(results, res)
	}

	if err := uc.orderRepo.MarkPaid(ctx, order.ID, order.Status, paidAt, amount); err != nil {
		if errors.Is(err, orderRepo.ErrStatusChanged) {
			return nil, ErrConcurrentUpdate
		}
		uc.logger.Error("FinalizePayment: failed to mark order id=%d paid: %v", order.ID, err)
		return nil, fmt.Errorf("%w: mark order paid: %w", ErrInternal, err)
	}

	return &payment{customerID: order.CustomerID, amount: amount, paidAt: paidAt, stockResults: results}, nil
}

// recordIncome добавляет запись о доходе и увеличивает счётчик в одной транзакции
// Счётчик увеличивается, только если запись действительно добавлена.
func (uc *UseCase) recordIncome(ctx context.Context, t domain.IncomeType, sourceID int64, p *payment) (bool, error) {
	var appended bool
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		appended, err = uc.incomeRepo.Append(txCtx, domain.NewIncomeRecord(t, sourceID, p.amount, p.paidAt))
		if err != nil {
			return fmt.Errorf("%w: append income record: %w", ErrInternal, err)
		}
		if !appended {
			return nil
		}

		total, err := uc.incomeRepo.IncrementTotal(txCtx, p.amount)
		if err != nil {
			return fmt.Errorf("%w: increment total income: %w", ErrInternal, err)
		}
		uc.logger.Info("FinalizePayment: income %s:%d +%s, total=%s", t, sourceID, p.amount.StringFixed(2), total.StringFixed(2))
		return nil
	})
	if err != nil {
		return false, err
	}
	return appended, nil
}

func validateRequest(req *Request) error {
	if req.SourceID <= 0 {
		return fmt.Errorf("%w: sourceID must be positive", ErrInvalidInput)
	}
	if _, err := domain.ParseIncomeType(string(req.SourceType)); err != nil {
		return err
	}
	if req.Amount != nil && req.Amount.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}
	return nil
}
