package run_sweep

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	runSweeps "github.com/m04kA/SMC-SalonService/internal/usecase/run_sweeps"
)

type SweepRunner interface {
	Run(ctx context.Context, sweep string) (*runSweeps.Result, error)
}

type AuthGate interface {
	Require(ctx context.Context, userID int64, roles ...domain.Role) (*domain.User, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
