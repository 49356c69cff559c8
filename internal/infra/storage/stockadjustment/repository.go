package stockadjustment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

// Repository журнал корректировок остатков, event_key служит ключом идемпотентности
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// TryInsert записывает корректировку; возвращает false, если ключ уже был обработан
func (r *Repository) TryInsert(ctx context.Context, adj *domain.StockAdjustment) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("stock_adjustments").
		Columns("event_key", "product_id", "variant_key", "delta").
		Values(adj.EventKey, adj.ProductID, adj.VariantKey, adj.Delta).
		Suffix("ON CONFLICT (event_key) DO NOTHING RETURNING created_at").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: TryInsert - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&adj.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: TryInsert - execute insert: %w", ErrExecQuery, err)
	}
	return true, nil
}

// Exists проверяет, была ли корректировка с ключом уже применена
func (r *Repository) Exists(ctx context.Context, eventKey string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("stock_adjustments").
		Where(squirrel.Eq{"event_key": eventKey}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: Exists - execute query: %w", ErrExecQuery, err)
	}
	return true, nil
}

// GetByEventKey возвращает сохранённую корректировку по ключу события
func (r *Repository) GetByEventKey(ctx context.Context, eventKey string) (*domain.StockAdjustment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("event_key", "product_id", "variant_key", "delta", "created_at").
		From("stock_adjustments").
		Where(squirrel.Eq{"event_key": eventKey}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEventKey - build select query: %v", ErrBuildQuery, err)
	}

	var adj domain.StockAdjustment
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&adj.EventKey, &adj.ProductID, &adj.VariantKey, &adj.Delta, &adj.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdjustmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEventKey - execute query: %w", ErrExecQuery, err)
	}
	return &adj, nil
}
