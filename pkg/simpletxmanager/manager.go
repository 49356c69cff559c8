package simpletxmanager

import (
	"context"
	"database/sql"

	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

// sqlBeginner адаптирует *sql.DB к txmanager.TxBeginner без сбора метрик
type sqlBeginner struct {
	db *sql.DB
}

func (b sqlBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx, err := b.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &dbmetrics.SqlTxWrapper{Tx: tx}, nil
}

// NewTransactionManager менеджер транзакций поверх обычного *sql.DB
// Используется, когда метрики выключены
func NewTransactionManager(db *sql.DB, opts txmanager.Options) *txmanager.TransactionManager {
	return txmanager.NewTransactionManagerWithOptions(sqlBeginner{db: db}, opts)
}
