package timeoff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	timeOffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/timeoff"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonService/internal/service/authz"
	"github.com/m04kA/SMC-SalonService/internal/service/timeoff/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

const (
	customerID   = 1
	stylistID    = 10
	otherStylist = 11
	adminID      = 20
)

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type stubUsers map[int64]*domain.User

func (s stubUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, userRepo.ErrUserNotFound
}

type memoryTimeOff struct {
	items  map[int64]*domain.TimeOffRange
	nextID int64
}

func (m *memoryTimeOff) Create(_ context.Context, t *domain.TimeOffRange) (*domain.TimeOffRange, error) {
	m.nextID++
	t.ID = m.nextID
	copied := *t
	m.items[t.ID] = &copied
	return t, nil
}

func (m *memoryTimeOff) GetByID(_ context.Context, id int64) (*domain.TimeOffRange, error) {
	t, ok := m.items[id]
	if !ok {
		return nil, timeOffRepo.ErrTimeOffNotFound
	}
	copied := *t
	return &copied, nil
}

func (m *memoryTimeOff) ListByStylist(_ context.Context, stylistID int64) ([]*domain.TimeOffRange, error) {
	var out []*domain.TimeOffRange
	for _, t := range m.items {
		if t.StylistID == stylistID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memoryTimeOff) UpdateStatus(_ context.Context, id int64, from, to domain.TimeOffStatus) error {
	t := m.items[id]
	if t.Status != from {
		return timeOffRepo.ErrStatusChanged
	}
	t.Status = to
	return nil
}

func (m *memoryTimeOff) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return timeOffRepo.ErrTimeOffNotFound
	}
	delete(m.items, id)
	return nil
}

type recordingNotifier struct{ sent []notifier.Notification }

func (n *recordingNotifier) Notify(x notifier.Notification) { n.sent = append(n.sent, x) }

func newTestService() (*Service, *memoryTimeOff, *recordingNotifier) {
	users := stubUsers{
		customerID:   {ID: customerID, Role: domain.RoleCustomer},
		stylistID:    {ID: stylistID, Role: domain.RoleWorker},
		otherStylist: {ID: otherStylist, Role: domain.RoleWorker},
		adminID:      {ID: adminID, Role: domain.RoleAdmin},
	}
	repo := &memoryTimeOff{items: map[int64]*domain.TimeOffRange{}}
	n := &recordingNotifier{}
	log := logger.NewNop()
	return NewService(repo, users, authz.NewGate(users, log), n, inlineTx{}, log), repo, n
}

func createReq(caller, stylist int64) *models.CreateTimeOffRequest {
	return &models.CreateTimeOffRequest{CallerID: caller, StylistID: stylist, StartDate: "2026-12-01", EndDate: "2026-12-03", Reason: ptr.Ptr("отпуск")}
}

func TestCreate_StatusDependsOnCaller(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	own, err := svc.Create(ctx, createReq(stylistID, stylistID))
	require.NoError(t, err)
	assert.Equal(t, string(domain.TimeOffPending), own.Status)

	byAdmin, err := svc.Create(ctx, createReq(adminID, stylistID))
	require.NoError(t, err)
	assert.Equal(t, string(domain.TimeOffApproved), byAdmin.Status)
	assert.Equal(t, int64(adminID), byAdmin.CreatedBy)
}

func TestCreate_Rejected(t *testing.T) {
	tests := []struct {
		name string
		req  *models.CreateTimeOffRequest
		kind error
	}{
		{name: "for another stylist", req: createReq(otherStylist, stylistID), kind: domain.ErrPermissionDenied},
		{name: "customer", req: createReq(customerID, stylistID), kind: domain.ErrPermissionDenied},
		{name: "target is not a stylist", req: createReq(adminID, customerID), kind: domain.ErrNotFound},
		{name: "end before start", req: &models.CreateTimeOffRequest{CallerID: adminID, StylistID: stylistID, StartDate: "2026-12-03", EndDate: "2026-12-01"}, kind: domain.ErrInvalidArgument},
		{name: "lenient date", req: &models.CreateTimeOffRequest{CallerID: adminID, StylistID: stylistID, StartDate: "2026-12-1", EndDate: "2026-12-03"}, kind: domain.ErrInvalidArgument},
		{name: "too long", req: &models.CreateTimeOffRequest{CallerID: adminID, StylistID: stylistID, StartDate: "2026-01-01", EndDate: "2027-06-01"}, kind: domain.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService()

			_, err := svc.Create(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.kind)
			assert.Empty(t, repo.items)
		})
	}
}

func TestReview(t *testing.T) {
	svc, repo, n := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createReq(stylistID, stylistID))
	require.NoError(t, err)

	_, err = svc.Approve(ctx, stylistID, created.ID)
	require.ErrorIs(t, err, domain.ErrPermissionDenied, "stylist cannot approve own request")

	approved, err := svc.Approve(ctx, adminID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.TimeOffApproved), approved.Status)
	assert.Equal(t, domain.TimeOffApproved, repo.items[created.ID].Status)
	require.Len(t, n.sent, 1)
	assert.Equal(t, int64(stylistID), n.sent[0].RecipientID)

	_, err = svc.Reject(ctx, adminID, created.ID)
	require.ErrorIs(t, err, ErrNotPending)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = svc.Approve(ctx, adminID, 404)
	assert.ErrorIs(t, err, ErrTimeOffNotFound)
}

func TestDelete(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	pending, err := svc.Create(ctx, createReq(stylistID, stylistID))
	require.NoError(t, err)
	approved, err := svc.Create(ctx, createReq(adminID, stylistID))
	require.NoError(t, err)

	err = svc.Delete(ctx, otherStylist, pending.ID)
	require.ErrorIs(t, err, domain.ErrPermissionDenied)

	err = svc.Delete(ctx, stylistID, approved.ID)
	require.ErrorIs(t, err, ErrNotPending, "stylist cannot delete an approved range")

	require.NoError(t, svc.Delete(ctx, stylistID, pending.ID))
	require.NoError(t, svc.Delete(ctx, adminID, approved.ID))
	assert.Empty(t, repo.items)

	err = svc.Delete(ctx, adminID, approved.ID)
	assert.ErrorIs(t, err, ErrTimeOffNotFound)
}

func TestListByStylist(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, createReq(stylistID, stylistID))
	require.NoError(t, err)

	own, err := svc.ListByStylist(ctx, stylistID, stylistID)
	require.NoError(t, err)
	assert.Len(t, own.TimeOff, 1)

	_, err = svc.ListByStylist(ctx, otherStylist, stylistID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	empty, err := svc.ListByStylist(ctx, adminID, otherStylist)
	require.NoError(t, err)
	assert.Empty(t, empty.TimeOff)
}
