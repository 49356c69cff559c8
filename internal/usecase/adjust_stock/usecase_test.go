package adjust_stock

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	productRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/product"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

// lockingTx сериализует транзакции мьютексом; вложенный вызов выполняется в текущей
type lockingTx struct {
	mu sync.Mutex
}

type inTxKey struct{}

func (tx *lockingTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(inTxKey{}) != nil {
		return fn(ctx)
	}
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return fn(context.WithValue(ctx, inTxKey{}, true))
}

type productStore struct {
	products map[int64]*domain.Product
	writes   int
}

func (s *productStore) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, productRepo.ErrProductNotFound
	}
	copied := *p
	copied.Variants = append([]domain.ProductVariant(nil), p.Variants...)
	return &copied, nil
}

func (s *productStore) UpdateVariants(_ context.Context, id int64, variants []domain.ProductVariant) error {
	s.writes++
	s.products[id].Variants = append([]domain.ProductVariant(nil), variants...)
	return nil
}

func (s *productStore) stock(id int64, size string) int {
	p := s.products[id]
	return p.Variants[p.VariantIndex(size)].Stock
}

type adjustmentStore struct {
	keys map[string]domain.StockAdjustment
}

func (s *adjustmentStore) TryInsert(_ context.Context, adj *domain.StockAdjustment) (bool, error) {
	if _, ok := s.keys[adj.EventKey]; ok {
		return false, nil
	}
	s.keys[adj.EventKey] = *adj
	return true, nil
}

func (s *adjustmentStore) GetByEventKey(_ context.Context, key string) (*domain.StockAdjustment, error) {
	adj, ok := s.keys[key]
	if !ok {
		return nil, fmt.Errorf("no adjustment %q", key)
	}
	return &adj, nil
}

type stubUsers struct{}

func (stubUsers) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	return []*domain.User{{ID: 20, Role: role}, {ID: 21, Role: role}}, nil
}

type staffGate struct{}

func (staffGate) Require(_ context.Context, userID int64, roles ...domain.Role) (*domain.User, error) {
	if userID == 1 {
		return nil, fmt.Errorf("%w: customer", domain.ErrPermissionDenied)
	}
	return &domain.User{ID: userID, Role: domain.RoleWorker}, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notifier.Notification
}

func (n *recordingNotifier) Notify(x notifier.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, x)
}

type countingMetrics struct{ low []string }

func (m *countingMetrics) ObserveLowStock(productID string) { m.low = append(m.low, productID) }

type fixture struct {
	products    *productStore
	adjustments *adjustmentStore
	notifier    *recordingNotifier
	metrics     *countingMetrics
	uc          *UseCase
}

func newFixture(stock int) *fixture {
	f := &fixture{
		products: &productStore{products: map[int64]*domain.Product{
			7: {ID: 7, Name: "Шампунь", Variants: []domain.ProductVariant{
				{Size: "250ml", Price: decimal.NewFromInt(900), Stock: stock},
				{Size: "1l", Price: decimal.NewFromInt(2500), Stock: 40},
			}},
		}},
		adjustments: &adjustmentStore{keys: map[string]domain.StockAdjustment{}},
		notifier:    &recordingNotifier{},
		metrics:     &countingMetrics{},
	}
	f.uc = NewUseCase(f.products, f.adjustments, stubUsers{}, staffGate{}, f.notifier, f.metrics, &lockingTx{}, logger.NewNop())
	return f
}

func TestExecute_SameEventKeyDeductsOnce(t *testing.T) {
	f := newFixture(20)
	ctx := context.Background()
	req := &Request{CallerID: 10, ProductID: 7, VariantKey: "250ml", Delta: -3, EventKey: "inventory-2026-10"}

	first, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.True(t, first.Applied)
	assert.Equal(t, 17, first.NewStock)

	second, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.False(t, second.Applied)

	assert.Equal(t, 17, f.products.stock(7, "250ml"))
	assert.Equal(t, 40, f.products.stock(7, "1l"), "other variants untouched")
	assert.Equal(t, 1, f.products.writes)
}

func TestExecute_LowStockNotification(t *testing.T) {
	tests := []struct {
		name     string
		stock    int
		delta    int
		wantLow  bool
		newStock int
	}{
		{name: "crosses threshold", stock: 6, delta: -1, wantLow: true, newStock: 5},
		{name: "crosses far below", stock: 30, delta: -28, wantLow: true, newStock: 2},
		{name: "already low", stock: 5, delta: -1, newStock: 4},
		{name: "stays above", stock: 10, delta: -4, newStock: 6},
		{name: "return does not notify", stock: 2, delta: 5, newStock: 7},
		{name: "negative allowed", stock: 1, delta: -3, newStock: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.stock)

			res, err := f.uc.Execute(context.Background(), &Request{
				CallerID: 10, ProductID: 7, VariantKey: "250ml", Delta: tt.delta, EventKey: "manual:1",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.newStock, res.NewStock)
			assert.Equal(t, tt.newStock, f.products.stock(7, "250ml"))
			assert.Equal(t, tt.wantLow, res.LowStock)

			if tt.wantLow {
				assert.Len(t, f.notifier.sent, 2, "every admin is notified")
				assert.Equal(t, []string{"7"}, f.metrics.low)
			} else {
				assert.Empty(t, f.notifier.sent)
				assert.Empty(t, f.metrics.low)
			}
		})
	}
}

func TestExecute_ConcurrentAdjustmentsDoNotLoseUpdates(t *testing.T) {
	f := newFixture(100)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// каждый ключ отправляется дважды, как при повторной доставке триггера
			for attempt := 0; attempt < 2; attempt++ {
				_, err := f.uc.Execute(ctx, &Request{
					CallerID: 10, ProductID: 7, VariantKey: "250ml", Delta: -1, EventKey: fmt.Sprintf("recount-%d", i),
				})
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 60, f.products.stock(7, "250ml"))
	assert.Len(t, f.adjustments.keys, 40)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{name: "zero delta", req: Request{CallerID: 10, ProductID: 7, VariantKey: "250ml", EventKey: "k"}, wantErr: ErrInvalidInput},
		{name: "empty event key", req: Request{CallerID: 10, ProductID: 7, VariantKey: "250ml", Delta: 1, EventKey: "  "}, wantErr: ErrInvalidInput},
		{name: "huge delta", req: Request{CallerID: 10, ProductID: 7, VariantKey: "250ml", Delta: -20000, EventKey: "k"}, wantErr: ErrInvalidInput},
		{name: "unknown product", req: Request{CallerID: 10, ProductID: 8, VariantKey: "250ml", Delta: 1, EventKey: "k"}, wantErr: ErrProductNotFound},
		{name: "unknown variant", req: Request{CallerID: 10, ProductID: 7, VariantKey: "500ml", Delta: 1, EventKey: "k"}, wantErr: ErrVariantNotFound},
		{name: "customer denied", req: Request{CallerID: 1, ProductID: 7, VariantKey: "250ml", Delta: 1, EventKey: "k"}, wantErr: domain.ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(20)
			_, err := f.uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 20, f.products.stock(7, "250ml"))
			assert.Empty(t, f.adjustments.keys)
		})
	}
}

func TestExecute_ManualKeysDoNotTakeOrderKeys(t *testing.T) {
	f := newFixture(10)
	ctx := context.Background()

	res, err := f.uc.Execute(ctx, &Request{CallerID: 10, ProductID: 7, VariantKey: "250ml", Delta: 1, EventKey: domain.FulfilEventKey(5, 0)})
	require.NoError(t, err)
	require.True(t, res.Applied)
	assert.Equal(t, 11, f.products.stock(7, "250ml"))

	_, taken := f.adjustments.keys[domain.FulfilEventKey(5, 0)]
	assert.False(t, taken)
	assert.Contains(t, f.adjustments.keys, domain.ManualEventKey(7, domain.FulfilEventKey(5, 0)))

	fulfil, err := f.uc.Apply(ctx, domain.StockAdjustment{EventKey: domain.FulfilEventKey(5, 0), ProductID: 7, VariantKey: "250ml", Delta: -2})
	require.NoError(t, err)
	assert.True(t, fulfil.Applied)
	assert.Equal(t, 9, f.products.stock(7, "250ml"))
}

func TestApply_ReusedKeyForAnotherTargetIsConflict(t *testing.T) {
	tests := []struct {
		name string
		adj  domain.StockAdjustment
	}{
		{name: "another variant", adj: domain.StockAdjustment{ProductID: 7, VariantKey: "1l", Delta: -2}},
		{name: "another delta", adj: domain.StockAdjustment{ProductID: 7, VariantKey: "250ml", Delta: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(20)
			ctx := context.Background()

			_, err := f.uc.Apply(ctx, domain.StockAdjustment{EventKey: "order:1:item:0:fulfil", ProductID: 7, VariantKey: "250ml", Delta: -2})
			require.NoError(t, err)

			tt.adj.EventKey = "order:1:item:0:fulfil"
			_, err = f.uc.Apply(ctx, tt.adj)
			assert.ErrorIs(t, err, ErrEventKeyConflict)
			assert.ErrorIs(t, err, domain.ErrConflict)
			assert.Equal(t, 18, f.products.stock(7, "250ml"))
			assert.Equal(t, 40, f.products.stock(7, "1l"))
		})
	}
}

func TestExecute_SameKeyOnAnotherProductIsSeparateEvent(t *testing.T) {
	f := newFixture(20)
	f.products.products[9] = &domain.Product{ID: 9, Name: "Маска", Variants: []domain.ProductVariant{{Size: "250ml", Stock: 8}}}
	ctx := context.Background()

	for _, id := range []int64{7, 9} {
		res, err := f.uc.Execute(ctx, &Request{CallerID: 10, ProductID: id, VariantKey: "250ml", Delta: 2, EventKey: "delivery-42"})
		require.NoError(t, err)
		assert.True(t, res.Applied)
	}
	assert.Equal(t, 22, f.products.stock(7, "250ml"))
	assert.Equal(t, 10, f.products.stock(9, "250ml"))
}
