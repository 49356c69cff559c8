package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-SalonService/internal/service/calendar/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type memoryCalendar struct{ cal *calendarRepo.Calendar }

func (m *memoryCalendar) Get(context.Context) (*calendarRepo.Calendar, error) {
	if m.cal == nil {
		return nil, calendarRepo.ErrCalendarNotConfigured
	}
	return m.cal, nil
}

func (m *memoryCalendar) Upsert(_ context.Context, slots []string) (*calendarRepo.Calendar, error) {
	m.cal = &calendarRepo.Calendar{Slots: slots, UpdatedAt: time.Now()}
	return m.cal, nil
}

type countingCache struct {
	invalidations int
	err           error
}

func (c *countingCache) Invalidate(context.Context) error {
	c.invalidations++
	return c.err
}

type adminGate struct{}

func (adminGate) Require(_ context.Context, userID int64, roles ...domain.Role) (*domain.User, error) {
	if userID != 20 {
		return nil, domain.ErrPermissionDenied
	}
	return &domain.User{ID: userID, Role: domain.RoleAdmin}, nil
}

func TestUpdateSlots(t *testing.T) {
	repo := &memoryCalendar{}
	cache := &countingCache{}
	svc := NewService(repo, cache, adminGate{}, logger.NewNop())
	ctx := context.Background()

	_, err := svc.GetSlots(ctx)
	require.ErrorIs(t, err, ErrCalendarNotConfigured)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	resp, err := svc.UpdateSlots(ctx, &models.UpdateSlotsRequest{CallerID: 20, Slots: []string{"13:00", "09:00", " 10:00", "11:00"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "11:00", "13:00"}, resp.Slots)
	assert.Equal(t, 1, cache.invalidations)

	got, err := svc.GetSlots(ctx)
	require.NoError(t, err)
	assert.Equal(t, resp.Slots, got.Slots)
}

func TestUpdateSlots_CacheFailureIsNotFatal(t *testing.T) {
	cache := &countingCache{err: errors.New("redis down")}
	svc := NewService(&memoryCalendar{}, cache, adminGate{}, logger.NewNop())

	_, err := svc.UpdateSlots(context.Background(), &models.UpdateSlotsRequest{CallerID: 20, Slots: []string{"09:00"}})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidations)
}

func TestUpdateSlots_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		callerID int64
		slots    []string
		kind     error
	}{
		{name: "not admin", callerID: 10, slots: []string{"09:00"}, kind: domain.ErrPermissionDenied},
		{name: "empty", callerID: 20, slots: nil, kind: domain.ErrInvalidArgument},
		{name: "malformed", callerID: 20, slots: []string{"9am"}, kind: domain.ErrInvalidArgument},
		{name: "duplicate", callerID: 20, slots: []string{"09:00", "09:00"}, kind: domain.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memoryCalendar{}
			cache := &countingCache{}
			svc := NewService(repo, cache, adminGate{}, logger.NewNop())

			_, err := svc.UpdateSlots(context.Background(), &models.UpdateSlotsRequest{CallerID: tt.callerID, Slots: tt.slots})
			require.ErrorIs(t, err, tt.kind)
			assert.Nil(t, repo.cal)
			assert.Zero(t, cache.invalidations)
		})
	}
}
