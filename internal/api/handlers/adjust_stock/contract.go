package adjust_stock

import (
	"context"

	adjustStock "github.com/m04kA/SMC-SalonService/internal/usecase/adjust_stock"
)

type AdjustStockUseCase interface {
	Execute(ctx context.Context, req *adjustStock.Request) (*adjustStock.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
