package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
)

type stubTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *stubTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *stubTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type stubBeginner struct {
	txs       []*stubTx
	commitErr error
}

func (b *stubBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx := &stubTx{commitErr: b.commitErr}
	b.txs = append(b.txs, tx)
	return tx, nil
}

func serializationErr() error {
	return fmt.Errorf("booking.repository: failed to execute query: Create: %w",
		&pq.Error{Code: pq.ErrorCode(pgerrcode.SerializationFailure)})
}

func newTestManager(db TxBeginner, retries *[]string) *TransactionManager {
	return NewTransactionManagerWithOptions(db, Options{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		OnRetry: func(reason string) {
			if retries != nil {
				*retries = append(*retries, reason)
			}
		},
	})
}

func TestDoSerializable_CommitsOnSuccess(t *testing.T) {
	db := &stubBeginner{}
	m := newTestManager(db, nil)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].committed)
}

func TestDoSerializable_RetriesOnSerializationFailure(t *testing.T) {
	db := &stubBeginner{}
	var retries []string
	m := newTestManager(db, &retries)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return serializationErr()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []string{"serialization_failure", "serialization_failure"}, retries)
	assert.True(t, db.txs[0].rolledBack)
	assert.True(t, db.txs[2].committed)
}

func TestDoSerializable_ConflictAfterRetriesExhausted(t *testing.T) {
	db := &stubBeginner{}
	m := newTestManager(db, nil)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return serializationErr()
	})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 3, calls)
}

func TestDoSerializable_CommitConflictIsRetried(t *testing.T) {
	db := &stubBeginner{commitErr: &pq.Error{Code: pq.ErrorCode(pgerrcode.DeadlockDetected)}}
	m := newTestManager(db, nil)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrConflict)
	assert.Len(t, db.txs, 3)
}

func TestDoSerializable_BusinessErrorIsNotRetried(t *testing.T) {
	db := &stubBeginner{}
	m := newTestManager(db, nil)
	errBusiness := errors.New("slot is not available")

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return errBusiness
	})

	assert.ErrorIs(t, err, errBusiness)
	assert.Equal(t, 1, calls)
	assert.True(t, db.txs[0].rolledBack)
}

func TestDoSerializable_NestedUsesOuterTransaction(t *testing.T) {
	db := &stubBeginner{}
	m := newTestManager(db, nil)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(inner context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Len(t, db.txs, 1)
}
