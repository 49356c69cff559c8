package update_order_status

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	orderRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/order"
	productRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/product"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonService/internal/service/authz"
	"github.com/m04kA/SMC-SalonService/internal/usecase/adjust_stock"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

const (
	customerID = 1
	stylistID  = 10
	adminID    = 20
	orderID    = 5
)

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubUsers map[int64]*domain.User

func (s stubUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, userRepo.ErrUserNotFound
}

func (s stubUsers) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range s {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type stubOrders struct{ orders map[int64]*domain.ProductOrder }

func (s *stubOrders) GetByID(_ context.Context, id int64) (*domain.ProductOrder, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, orderRepo.ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (s *stubOrders) UpdateStatus(_ context.Context, id int64, from, to domain.OrderStatus) error {
	o := s.orders[id]
	if o.Status != from {
		return orderRepo.ErrStatusChanged
	}
	o.Status = to
	return nil
}

type productStore map[int64]*domain.Product

func (s productStore) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := s[id]
	if !ok {
		return nil, productRepo.ErrProductNotFound
	}
	copied := *p
	copied.Variants = append([]domain.ProductVariant(nil), p.Variants...)
	return &copied, nil
}

func (s productStore) UpdateVariants(_ context.Context, id int64, variants []domain.ProductVariant) error {
	s[id].Variants = append([]domain.ProductVariant(nil), variants...)
	return nil
}

func (s productStore) stock(id int64, size string) int {
	p := s[id]
	return p.Variants[p.VariantIndex(size)].Stock
}

type adjustmentStore map[string]domain.StockAdjustment

func (s adjustmentStore) TryInsert(_ context.Context, adj *domain.StockAdjustment) (bool, error) {
	if _, ok := s[adj.EventKey]; ok {
		return false, nil
	}
	s[adj.EventKey] = *adj
	return true, nil
}

func (s adjustmentStore) GetByEventKey(_ context.Context, key string) (*domain.StockAdjustment, error) {
	adj, ok := s[key]
	if !ok {
		return nil, fmt.Errorf("no adjustment %q", key)
	}
	return &adj, nil
}

func (s adjustmentStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := s[key]
	return ok, nil
}

type recordingNotifier struct{ sent []notifier.Notification }

func (n *recordingNotifier) Notify(x notifier.Notification) { n.sent = append(n.sent, x) }

type nopMetrics struct{}

func (nopMetrics) ObserveLowStock(string) {}

type fixture struct {
	orders      *stubOrders
	products    productStore
	adjustments adjustmentStore
	notifier    *recordingNotifier
	ledger      *adjust_stock.UseCase
	uc          *UseCase
}

func newFixture(status domain.OrderStatus) *fixture {
	f := &fixture{
		orders: &stubOrders{orders: map[int64]*domain.ProductOrder{
			orderID: {ID: orderID, CustomerID: customerID, Status: status, TotalPrice: decimal.NewFromInt(3400), Items: []domain.CartItem{
				{ProductID: 7, Size: "250ml", Quantity: 2},
				{ProductID: 8, Size: "50ml", Quantity: 1},
			}},
		}},
		products: productStore{
			7: {ID: 7, Name: "Шампунь", Variants: []domain.ProductVariant{{Size: "250ml", Stock: 10}}},
			8: {ID: 8, Name: "Масло", Variants: []domain.ProductVariant{{Size: "50ml", Stock: 3}}},
		},
		adjustments: adjustmentStore{},
		notifier:    &recordingNotifier{},
	}
	users := stubUsers{
		customerID: {ID: customerID, Role: domain.RoleCustomer},
		stylistID:  {ID: stylistID, Role: domain.RoleWorker},
		adminID:    {ID: adminID, Role: domain.RoleAdmin},
	}
	log := logger.NewNop()
	gate := authz.NewGate(users, log)
	f.ledger = adjust_stock.NewUseCase(f.products, f.adjustments, users, gate, f.notifier, nopMetrics{}, inlineTx{}, log)
	f.uc = NewUseCase(f.orders, f.adjustments, f.ledger, gate, f.notifier, inlineTx{}, log)
	return f
}

func TestExecute_ReadyForPickupDeductsStock(t *testing.T) {
	f := newFixture(domain.OrderPendingPickup)

	resp, err := f.uc.Execute(context.Background(), &Request{CallerID: stylistID, OrderID: orderID, Target: domain.OrderReadyForPickup})
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Equal(t, 2, resp.StockAdjusted)
	assert.Equal(t, 8, f.products.stock(7, "250ml"))
	assert.Equal(t, 2, f.products.stock(8, "50ml"))
	assert.Contains(t, f.adjustments, domain.FulfilEventKey(orderID, 0))
	assert.Contains(t, f.adjustments, domain.FulfilEventKey(orderID, 1))

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, int64(customerID), f.notifier.sent[0].RecipientID)
}

func TestExecute_CancelReturnsOnlyDeductedItems(t *testing.T) {
	f := newFixture(domain.OrderReadyForPickup)
	// списана только первая позиция
	f.adjustments[domain.FulfilEventKey(orderID, 0)] = domain.StockAdjustment{EventKey: domain.FulfilEventKey(orderID, 0)}

	resp, err := f.uc.Execute(context.Background(), &Request{CallerID: adminID, OrderID: orderID, Target: domain.OrderCancelled})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.StockAdjusted)
	assert.Equal(t, 12, f.products.stock(7, "250ml"))
	assert.Equal(t, 3, f.products.stock(8, "50ml"))
	assert.NotContains(t, f.adjustments, domain.ReturnEventKey(orderID, 1))
}

func TestExecute_CancelPendingReturnsNothing(t *testing.T) {
	f := newFixture(domain.OrderPendingPickup)

	resp, err := f.uc.Execute(context.Background(), &Request{CallerID: adminID, OrderID: orderID, Target: domain.OrderCancelled})
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Zero(t, resp.StockAdjusted)
	assert.Equal(t, 10, f.products.stock(7, "250ml"))
}

func TestExecute_FullCycleIsIdempotent(t *testing.T) {
	f := newFixture(domain.OrderPendingPickup)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, &Request{CallerID: stylistID, OrderID: orderID, Target: domain.OrderReadyForPickup})
	require.NoError(t, err)

	resp, err := f.uc.Execute(ctx, &Request{CallerID: domain.SystemUserID, OrderID: orderID, Target: domain.OrderAbandoned})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.StockAdjusted)

	again, err := f.uc.Execute(ctx, &Request{CallerID: domain.SystemUserID, OrderID: orderID, Target: domain.OrderAbandoned})
	require.NoError(t, err)
	assert.False(t, again.Changed)

	assert.Equal(t, 10, f.products.stock(7, "250ml"))
	assert.Equal(t, 3, f.products.stock(8, "50ml"))
	assert.Len(t, f.adjustments, 4)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.OrderStatus
		req     *Request
		wantErr error
		kind    error
	}{
		{name: "customer denied", status: domain.OrderPendingPickup, req: &Request{CallerID: customerID, OrderID: orderID, Target: domain.OrderCancelled}, wantErr: authz.ErrForbidden, kind: domain.ErrPermissionDenied},
		{name: "completed requires payment", status: domain.OrderReadyForPickup, req: &Request{CallerID: adminID, OrderID: orderID, Target: domain.OrderCompleted}, wantErr: ErrCompletionRequiresPayment, kind: domain.ErrInvalidState},
		{name: "abandon from pending", status: domain.OrderPendingPickup, req: &Request{CallerID: adminID, OrderID: orderID, Target: domain.OrderAbandoned}, wantErr: domain.ErrInvalidTransition, kind: domain.ErrInvalidState},
		{name: "unknown order", status: domain.OrderPendingPickup, req: &Request{CallerID: adminID, OrderID: 404, Target: domain.OrderCancelled}, wantErr: ErrOrderNotFound, kind: domain.ErrNotFound},
		{name: "initial status target", status: domain.OrderReadyForPickup, req: &Request{CallerID: adminID, OrderID: orderID, Target: domain.OrderPendingPickup}, wantErr: ErrInvalidInput, kind: domain.ErrInvalidArgument},
		{name: "unknown status", status: domain.OrderPendingPickup, req: &Request{CallerID: adminID, OrderID: orderID, Target: "lost"}, kind: domain.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.status)

			_, err := f.uc.Execute(context.Background(), tt.req)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.status, f.orders.orders[orderID].Status)
			assert.Empty(t, f.adjustments)
		})
	}
}

func TestExecute_ManualAdjustmentWithOrderKeyDoesNotSkipFulfil(t *testing.T) {
	f := newFixture(domain.OrderPendingPickup)
	ctx := context.Background()

	_, err := f.ledger.Execute(ctx, &adjust_stock.Request{
		CallerID: adminID, ProductID: 7, VariantKey: "250ml", Delta: 1, EventKey: domain.FulfilEventKey(orderID, 0),
	})
	require.NoError(t, err)
	require.Equal(t, 11, f.products.stock(7, "250ml"))

	_, err = f.uc.Execute(ctx, &Request{CallerID: stylistID, OrderID: orderID, Target: domain.OrderReadyForPickup})
	require.NoError(t, err)
	assert.Equal(t, 9, f.products.stock(7, "250ml"))

	_, err = f.uc.Execute(ctx, &Request{CallerID: adminID, OrderID: orderID, Target: domain.OrderCancelled})
	require.NoError(t, err)
	assert.Equal(t, 11, f.products.stock(7, "250ml"))
	assert.Equal(t, 3, f.products.stock(8, "50ml"))
}
