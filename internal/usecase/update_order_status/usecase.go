package update_order_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	orderRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/order"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonService/internal/usecase/adjust_stock"
)

// UseCase переходы статуса заказа с движением остатков
type UseCase struct {
	orderRepo      OrderRepository
	adjustmentRepo AdjustmentRepository
	ledger         StockLedger
	gate           AuthGate
	notifier       Notifier
	txManager      TransactionManager
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	adjustmentRepo AdjustmentRepository,
	ledger StockLedger,
	gate AuthGate,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:      orderRepo,
		adjustmentRepo: adjustmentRepo,
		ledger:         ledger,
		gate:           gate,
		notifier:       notifier,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute переводит заказ в Target
//
// ready_for_pickup и completed списывают позиции (ключи fulfil),
// cancelled и abandoned возвращают только списанные позиции (ключи return).
// Повтор с теми же ключами остаток не меняет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateOrderStatus: caller=%d, order=%d, target=%s", req.CallerID, req.OrderID, req.Target)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateOrderStatus: validation failed: %v", err)
		return nil, err
	}

	var (
		resp *Response
		tr   transition
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := uc.gate.Require(txCtx, req.CallerID, domain.StaffRoles...); err != nil {
			return err
		}
		if req.Target == domain.OrderCompleted && req.CallerID != domain.SystemUserID {
			return ErrCompletionRequiresPayment
		}

		order, err := uc.orderRepo.GetByID(txCtx, req.OrderID)
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				return fmt.Errorf("%w: id=%d", ErrOrderNotFound, req.OrderID)
			}
			uc.logger.Error("UpdateOrderStatus: failed to get order id=%d: %v", req.OrderID, err)
			return fmt.Errorf("%w: get order: %w", ErrInternal, err)
		}
		tr.order = order

		noop, err := domain.CheckOrderTransition(order.Status, req.Target)
		if err != nil {
			uc.logger.Warn("UpdateOrderStatus: order=%d: %v", order.ID, err)
			return err
		}
		if noop {
			resp = &Response{OrderID: order.ID, Previous: order.Status, Status: order.Status}
			return nil
		}

		if err := uc.orderRepo.UpdateStatus(txCtx, order.ID, order.Status, req.Target); err != nil {
			if errors.Is(err, orderRepo.ErrStatusChanged) {
				return ErrConcurrentUpdate
			}
			uc.logger.Error("UpdateOrderStatus: failed to update order id=%d: %v", order.ID, err)
			return fmt.Errorf("%w: update status: %w", ErrInternal, err)
		}

		switch {
		case req.Target == domain.OrderReadyForPickup || req.Target == domain.OrderCompleted:
			tr.results, err = uc.fulfil(txCtx, order)
		case req.Target.ReleasesStock():
			tr.results, err = uc.release(txCtx, order)
		}
		if err != nil {
			return err
		}

		resp = &Response{OrderID: order.ID, Previous: order.Status, Status: req.Target, Changed: true}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !resp.Changed {
		uc.logger.Info("UpdateOrderStatus: order=%d already %s, nothing to do", resp.OrderID, resp.Status)
		return resp, nil
	}

	for _, r := range tr.results {
		if r.Applied {
			resp.StockAdjusted++
		}
	}
	uc.ledger.AfterCommit(ctx, tr.results...)

	uc.logger.Info("UpdateOrderStatus: order=%d %s -> %s, stock adjusted for %d items",
		resp.OrderID, resp.Previous, resp.Status, resp.StockAdjusted)
	uc.notifyCustomer(tr.order, req.Target)

	return resp, nil
}

func (uc *UseCase) fulfil(ctx context.Context, order *domain.ProductOrder) ([]*adjust_stock.Result, error) {
	results := make([]*adjust_stock.Result, 0, len(order.Items))
	for i, item := range order.Items {
		res, err := uc.ledger.Apply(ctx, domain.StockAdjustment{
			EventKey:   domain.FulfilEventKey(order.ID, i),
			ProductID:  item.ProductID,
			VariantKey: item.Size,
			Delta:      -item.Quantity,
		})
		if err != nil {
			uc.logger.Error("UpdateOrderStatus: failed to deduct order=%d item=%d: %v", order.ID, i, err)
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (uc *UseCase) release(ctx context.Context, order *domain.ProductOrder) ([]*adjust_stock.Result, error) {
	results := make([]*adjust_stock.Result, 0, len(order.Items))
	for i, item := range order.Items {
		// Не списанная позиция не возвращается
		deducted, err := uc.adjustmentRepo.Exists(ctx, domain.FulfilEventKey(order.ID, i))
		if err != nil {
			uc.logger.Error("UpdateOrderStatus: failed to check fulfil key order=%d item=%d: %v", order.ID, i, err)
			return nil, fmt.Errorf("%w: check fulfil key: %w", ErrInternal, err)
		}
		if !deducted {
			continue
		}

		res, err := uc.ledger.Apply(ctx, domain.StockAdjustment{
			EventKey:   domain.ReturnEventKey(order.ID, i),
			ProductID:  item.ProductID,
			VariantKey: item.Size,
			Delta:      item.Quantity,
		})
		if err != nil {
			uc.logger.Error("UpdateOrderStatus: failed to return order=%d item=%d: %v", order.ID, i, err)
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (uc *UseCase) notifyCustomer(order *domain.ProductOrder, target domain.OrderStatus) {
	var title string
	switch target {
	case domain.OrderReadyForPickup:
		title = "Заказ готов к выдаче"
	case domain.OrderCancelled:
		title = "Заказ отменён"
	case domain.OrderAbandoned:
		title = "Заказ не был получен и отменён"
	default:
		return
	}

	uc.notifier.Notify(notifier.Notification{
		RecipientID:    order.CustomerID,
		Title:          title,
		Body:           fmt.Sprintf("Заказ №%d на сумму %s", order.ID, order.TotalPrice.StringFixed(2)),
		LinkedRecordID: fmt.Sprintf("order:%d", order.ID),
	})
}

func validateRequest(req *Request) error {
	if req.OrderID <= 0 {
		return fmt.Errorf("%w: orderID must be positive", ErrInvalidInput)
	}
	if _, err := domain.ParseOrderStatus(string(req.Target)); err != nil {
		return err
	}
	if req.Target == domain.OrderPendingPickup {
		return fmt.Errorf("%w: %s is an initial status", ErrInvalidInput, req.Target)
	}
	return nil
}
