package income

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

// totalIncomeID идентификатор единственной строки счётчика
const totalIncomeID = "total"

// Repository журнал доходов и накопительный счётчик
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись о доходе
// Возвращает false, если запись для этого источника уже есть (UNIQUE source_type, source_id)
func (r *Repository) Append(ctx context.Context, rec *domain.IncomeRecord) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("income_records").
		Columns("id", "amount", "source_type", "source_id", "created_at").
		Values(rec.ID, rec.Amount, rec.Type, rec.SourceID, rec.CreatedAt).
		Suffix("ON CONFLICT (source_type, source_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Append - execute insert: %w", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Append - get rows affected: %w", ErrExecQuery, err)
	}
	return affected == 1, nil
}

// IncrementTotal атомарно увеличивает счётчик; первая запись создаёт строку с начальной суммой
func (r *Repository) IncrementTotal(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("total_income").
		Columns("id", "amount").
		Values(totalIncomeID, amount).
		Suffix("ON CONFLICT (id) DO UPDATE SET amount = total_income.amount + EXCLUDED.amount, updated_at = NOW() RETURNING amount").
		ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: IncrementTotal - build upsert query: %v", ErrBuildQuery, err)
	}

	var total decimal.Decimal
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("%w: IncrementTotal - execute upsert: %w", ErrExecQuery, err)
	}
	return total, nil
}

// GetTotal текущее значение счётчика (ноль, если дохода ещё не было)
func (r *Repository) GetTotal(ctx context.Context) (*domain.TotalIncome, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("amount", "updated_at").
		From("total_income").
		Where(squirrel.Eq{"id": totalIncomeID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTotal - build select query: %v", ErrBuildQuery, err)
	}

	var total domain.TotalIncome
	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&total.Amount, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.TotalIncome{Amount: decimal.Zero}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTotal - scan total: %w", ErrScanRow, err)
	}
	total.UpdatedAt = updatedAt.Time
	return &total, nil
}
