package get_income_total

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type IncomeReader interface {
	GetTotal(ctx context.Context) (*domain.TotalIncome, error)
}

type AuthGate interface {
	Require(ctx context.Context, userID int64, roles ...domain.Role) (*domain.User, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
