package adjust_stock

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	productRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/product"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
)

// UseCase журнал остатков товаров
//
// Каждое изменение остатка выполняется одной транзакцией чтение-изменение-запись
// над документом вариантов товара и привязано к ключу события.
type UseCase struct {
	productRepo    ProductRepository
	adjustmentRepo AdjustmentRepository
	userRepo       UserRepository
	gate           AuthGate
	notifier       Notifier
	metrics        Metrics
	txManager      TransactionManager
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	productRepo ProductRepository,
	adjustmentRepo AdjustmentRepository,
	userRepo UserRepository,
	gate AuthGate,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		productRepo:    productRepo,
		adjustmentRepo: adjustmentRepo,
		userRepo:       userRepo,
		gate:           gate,
		notifier:       notifier,
		metrics:        metrics,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute ручная корректировка остатка (стилист или администратор)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Result, error) {
	uc.logger.Info("AdjustStock: caller=%d, product=%d, variant=%q, delta=%d, key=%q",
		req.CallerID, req.ProductID, req.VariantKey, req.Delta, req.EventKey)

	adj := domain.StockAdjustment{
		EventKey:   strings.TrimSpace(req.EventKey),
		ProductID:  req.ProductID,
		VariantKey: req.VariantKey,
		Delta:      req.Delta,
	}
	if err := validate(adj); err != nil {
		uc.logger.Warn("AdjustStock: validation failed: %v", err)
		return nil, err
	}
	adj.EventKey = domain.ManualEventKey(adj.ProductID, adj.EventKey)

	var result *Result
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := uc.gate.Require(txCtx, req.CallerID, domain.StaffRoles...); err != nil {
			return err
		}

		var err error
		result, err = uc.Apply(txCtx, adj)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.AfterCommit(ctx, result)
	return result, nil
}

// Apply применяет корректировку; внутри внешней транзакции выполняется в ней
// Уведомления о низком остатке не отправляются: после коммита вызывающий передаёт результаты в AfterCommit.
func (uc *UseCase) Apply(ctx context.Context, adj domain.StockAdjustment) (*Result, error) {
	if err := validate(adj); err != nil {
		return nil, err
	}

	var result *Result
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем документ товара
		product, err := uc.productRepo.GetByID(txCtx, adj.ProductID)
		if err != nil {
			if errors.Is(err, productRepo.ErrProductNotFound) {
				return fmt.Errorf("%w: id=%d", ErrProductNotFound, adj.ProductID)
			}
			uc.logger.Error("AdjustStock: failed to get product id=%d: %v", adj.ProductID, err)
			return fmt.Errorf("%w: get product: %w", ErrInternal, err)
		}

		i := product.VariantIndex(adj.VariantKey)
		if i < 0 {
			return fmt.Errorf("%w: product=%d variant=%q", ErrVariantNotFound, adj.ProductID, adj.VariantKey)
		}

		// 2. Ключ события: повторный триггер ничего не меняет
		applied, err := uc.adjustmentRepo.TryInsert(txCtx, &adj)
		if err != nil {
			uc.logger.Error("AdjustStock: failed to record event key=%q: %v", adj.EventKey, err)
			return fmt.Errorf("%w: record adjustment: %w", ErrInternal, err)
		}
		if !applied {
			stored, err := uc.adjustmentRepo.GetByEventKey(txCtx, adj.EventKey)
			if err != nil {
				uc.logger.Error("AdjustStock: failed to get adjustment key=%q: %v", adj.EventKey, err)
				return fmt.Errorf("%w: get adjustment: %w", ErrInternal, err)
			}
			if !stored.SameTarget(adj) {
				uc.logger.Warn("AdjustStock: event key=%q belongs to product=%d variant=%q delta=%d",
					adj.EventKey, stored.ProductID, stored.VariantKey, stored.Delta)
				return fmt.Errorf("%w: key=%q", ErrEventKeyConflict, adj.EventKey)
			}

			uc.logger.Info("AdjustStock: event key=%q already applied, skipping", adj.EventKey)
			result = &Result{ProductID: product.ID, ProductName: product.Name, VariantKey: adj.VariantKey,
				OldStock: product.Variants[i].Stock, NewStock: product.Variants[i].Stock}
			return nil
		}

		// 3. Новый остаток, отрицательное значение допустимо
		oldStock := product.Variants[i].Stock
		newStock := oldStock + adj.Delta
		product.Variants[i].Stock = newStock

		if err := uc.productRepo.UpdateVariants(txCtx, product.ID, product.Variants); err != nil {
			uc.logger.Error("AdjustStock: failed to update product id=%d: %v", product.ID, err)
			return fmt.Errorf("%w: update variants: %w", ErrInternal, err)
		}

		if newStock < 0 {
			uc.logger.Warn("AdjustStock: product=%d variant=%q stock is negative: %d", product.ID, adj.VariantKey, newStock)
		}

		result = &Result{
			Applied:     true,
			ProductID:   product.ID,
			ProductName: product.Name,
			VariantKey:  adj.VariantKey,
			OldStock:    oldStock,
			NewStock:    newStock,
			LowStock:    domain.CrossesLowStock(oldStock, newStock),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("AdjustStock: product=%d variant=%q %d -> %d (applied=%t)",
		result.ProductID, result.VariantKey, result.OldStock, result.NewStock, result.Applied)
	return result, nil
}

// AfterCommit уведомляет администраторов о низком остатке
func (uc *UseCase) AfterCommit(ctx context.Context, results ...*Result) {
	var low []*Result
	for _, r := range results {
		if r != nil && r.Applied && r.LowStock {
			low = append(low, r)
		}
	}
	if len(low) == 0 {
		return
	}

	admins, err := uc.userRepo.ListByRole(ctx, domain.RoleAdmin)
	if err != nil {
		uc.logger.Error("AdjustStock: failed to list admins for low-stock notification: %v", err)
		admins = nil
	}

	for _, r := range low {
		uc.metrics.ObserveLowStock(strconv.FormatInt(r.ProductID, 10))
		uc.logger.Warn("AdjustStock: low stock product=%d variant=%q stock=%d", r.ProductID, r.VariantKey, r.NewStock)

		for _, admin := range admins {
			uc.notifier.Notify(notifier.Notification{
				RecipientID:    admin.ID,
				Title:          "Заканчивается товар",
				Body:           fmt.Sprintf("%s (%s): осталось %d", r.ProductName, r.VariantKey, r.NewStock),
				LinkedRecordID: fmt.Sprintf("product:%d", r.ProductID),
			})
		}
	}
}

func validate(adj domain.StockAdjustment) error {
	if adj.ProductID <= 0 {
		return fmt.Errorf("%w: productID must be positive", ErrInvalidInput)
	}
	if adj.VariantKey == "" {
		return fmt.Errorf("%w: variant key is required", ErrInvalidInput)
	}
	if adj.EventKey == "" {
		return fmt.Errorf("%w: event key is required", ErrInvalidInput)
	}
	if adj.Delta == 0 {
		return fmt.Errorf("%w: delta must not be zero", ErrInvalidInput)
	}
	if adj.Delta > domain.MaxStockDeltaAbs || adj.Delta < -domain.MaxStockDeltaAbs {
		return fmt.Errorf("%w: |delta| must not exceed %d", ErrInvalidInput, domain.MaxStockDeltaAbs)
	}
	return nil
}
