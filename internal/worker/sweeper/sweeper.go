package sweeper

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SalonService/internal/usecase/run_sweeps"
)

type Sweeps interface {
	ExpireSlots(ctx context.Context) (*run_sweeps.Result, error)
	AutoComplete(ctx context.Context) (*run_sweeps.Result, error)
	AbandonOrders(ctx context.Context) (*run_sweeps.Result, error)
	AutoCompleteEnabled() bool
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config интервалы запуска
type Config struct {
	ExpireInterval  time.Duration
	AbandonInterval time.Duration
}

// Sweeper периодически запускает sweep-задачи
type Sweeper struct {
	sweeps Sweeps
	cfg    Config
	logger Logger
}

func New(sweeps Sweeps, cfg Config, logger Logger) *Sweeper {
	return &Sweeper{sweeps: sweeps, cfg: cfg, logger: logger}
}

// Run блокируется до отмены контекста.
// Автозавершение выполняется перед истечением слотов, иначе подтверждённые записи уйдут в missed.
func (s *Sweeper) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	if s.cfg.ExpireInterval > 0 {
		g.Go(func() error {
			s.loop(ctx, s.cfg.ExpireInterval, s.bookingsTick)
			return nil
		})
	}

	if s.cfg.AbandonInterval > 0 {
		g.Go(func() error {
			s.loop(ctx, s.cfg.AbandonInterval, s.ordersTick)
			return nil
		})
	}

	return g.Wait()
}

func (s *Sweeper) loop(ctx context.Context, interval time.Duration, tick func(ctx context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick(ctx)
		}
	}
}

func (s *Sweeper) bookingsTick(ctx context.Context) {
	if s.sweeps.AutoCompleteEnabled() {
		if _, err := s.sweeps.AutoComplete(ctx); err != nil {
			s.logger.Error("Sweeper: auto_complete failed: %v", err)
		}
	}

	if _, err := s.sweeps.ExpireSlots(ctx); err != nil {
		s.logger.Error("Sweeper: expire_slots failed: %v", err)
	}
}

func (s *Sweeper) ordersTick(ctx context.Context) {
	if _, err := s.sweeps.AbandonOrders(ctx); err != nil {
		s.logger.Error("Sweeper: abandon_orders failed: %v", err)
	}
}
