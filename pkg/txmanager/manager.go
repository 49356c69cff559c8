package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
)

const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 50 * time.Millisecond
)

// TxBeginner источник транзакций (*dbmetrics.DB или адаптер над *sql.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// Options настройки повторов
type Options struct {
	MaxRetries int
	BaseDelay  time.Duration
	// OnRetry вызывается перед каждым повтором (например, для метрик)
	OnRetry func(reason string)
}

// TransactionManager выполняет функции в транзакции, транзакция передаётся через context
type TransactionManager struct {
	db   TxBeginner
	opts Options
}

// NewTransactionManager создает менеджер транзакций с настройками по умолчанию
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return NewTransactionManagerWithOptions(db, Options{})
}

func NewTransactionManagerWithOptions(db TxBeginner, opts Options) *TransactionManager {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = DefaultBaseDelay
	}
	return &TransactionManager{db: db, opts: opts}
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
// При serialization failure / deadlock транзакция повторяется с линейной задержкой.
// Если в контексте уже есть транзакция, fn выполняется в ней без вложенной транзакции.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// Do выполняет fn в транзакции READ COMMITTED с теми же правилами повторов
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

func (m *TransactionManager) do(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	var lastErr error
	for attempt := 0; attempt <= m.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			reason := retryReason(lastErr)
			if m.opts.OnRetry != nil {
				m.opts.OnRetry(reason)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * m.opts.BaseDelay):
			}
		}

		lastErr = m.runOnce(ctx, opts, fn)
		if lastErr == nil {
			return nil
		}
		if !IsRetryable(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("%w: after %d attempts: %w", ErrConflict, m.opts.MaxRetries+1, lastErr)
}

func (m *TransactionManager) runOnce(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommit, err)
	}
	return nil
}

// IsRetryable проверяет, что ошибка вызвана конфликтом сериализации или deadlock
func IsRetryable(err error) bool {
	return retryReason(err) != ""
}

func retryReason(err error) string {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return ""
	}
	switch string(pqErr.Code) {
	case pgerrcode.SerializationFailure:
		return "serialization_failure"
	case pgerrcode.DeadlockDetected:
		return "deadlock"
	default:
		return ""
	}
}
