package sweeper

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/usecase/run_sweeps"
)

type recordingSweeps struct {
	mu           sync.Mutex
	calls        []string
	autoComplete bool
}

func (r *recordingSweeps) record(name string) (*run_sweeps.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
	return &run_sweeps.Result{Sweep: name}, nil
}

func (r *recordingSweeps) ExpireSlots(context.Context) (*run_sweeps.Result, error) {
	return r.record(run_sweeps.SweepExpireSlots)
}

func (r *recordingSweeps) AutoComplete(context.Context) (*run_sweeps.Result, error) {
	return r.record(run_sweeps.SweepAutoComplete)
}

func (r *recordingSweeps) AbandonOrders(context.Context) (*run_sweeps.Result, error) {
	return r.record(run_sweeps.SweepAbandonOrders)
}

func (r *recordingSweeps) AutoCompleteEnabled() bool { return r.autoComplete }

func (r *recordingSweeps) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestBookingsTick_AutoCompleteRunsFirst(t *testing.T) {
	sweeps := &recordingSweeps{autoComplete: true}
	s := New(sweeps, Config{}, nopLogger{})

	s.bookingsTick(context.Background())

	assert.Equal(t, []string{run_sweeps.SweepAutoComplete, run_sweeps.SweepExpireSlots}, sweeps.snapshot())
}

func TestBookingsTick_AutoCompleteDisabled(t *testing.T) {
	sweeps := &recordingSweeps{}
	s := New(sweeps, Config{}, nopLogger{})

	s.bookingsTick(context.Background())

	assert.Equal(t, []string{run_sweeps.SweepExpireSlots}, sweeps.snapshot())
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	sweeps := &recordingSweeps{}
	s := New(sweeps, Config{
		ExpireInterval:  5 * time.Millisecond,
		AbandonInterval: 5 * time.Millisecond,
	}, nopLogger{})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after context cancellation")
	}

	calls := sweeps.snapshot()
	assert.Contains(t, calls, run_sweeps.SweepExpireSlots)
	assert.Contains(t, calls, run_sweeps.SweepAbandonOrders)
}
