package product

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

// Repository репозиторий товаров
// Варианты хранятся документом JSONB и всегда перезаписываются целиком
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает товар; внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "name", "variants", "updated_at").
		From("products").
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Product
	var raw []byte
	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.Name, &raw, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan product: %w", ErrScanRow, err)
	}

	if err := json.Unmarshal(raw, &p.Variants); err != nil {
		return nil, fmt.Errorf("%w: GetByID - decode variants: %v", ErrScanRow, err)
	}
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// UpdateVariants перезаписывает список вариантов товара
func (r *Repository) UpdateVariants(ctx context.Context, productID int64, variants []domain.ProductVariant) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	raw, err := json.Marshal(variants)
	if err != nil {
		return fmt.Errorf("%w: UpdateVariants: %v", ErrEncodeVariants, err)
	}

	query, args, err := psqlbuilder.Update("products").
		Set("variants", raw).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": productID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateVariants - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateVariants - execute update: %w", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateVariants - get rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
