package timeoff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

var timeOffColumns = []string{
	"id",
	"stylist_id",
	"start_date",
	"end_date",
	"status",
	"reason",
	"created_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий отгулов стилистов
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает отгул
func (r *Repository) Create(ctx context.Context, t *domain.TimeOffRange) (*domain.TimeOffRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_off").
		Columns("stylist_id", "start_date", "end_date", "status", "reason", "created_by").
		Values(t.StylistID, t.StartDate, t.EndDate, t.Status, t.Reason, t.CreatedBy).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time
	return t, nil
}

// GetByID получает отгул по ID (FOR UPDATE внутри транзакции)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeOffRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(timeOffColumns...).
		From("time_off").
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	t, err := scanTimeOff(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTimeOffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan time-off: %w", ErrScanRow, err)
	}
	return t, nil
}

// ListApprovedStartingBy одобренные отгулы стилиста, начинающиеся не позже date
// Проверку end_date >= date выполняет вызывающий (TimeOffIndex)
func (r *Repository) ListApprovedStartingBy(ctx context.Context, stylistID int64, date time.Time) ([]*domain.TimeOffRange, error) {
	return r.list(ctx, "ListApprovedStartingBy", squirrel.And{
		squirrel.Eq{"stylist_id": stylistID, "status": domain.TimeOffApproved},
		squirrel.LtOrEq{"start_date": date},
	})
}

// ListByStylist все отгулы стилиста, новые первыми
func (r *Repository) ListByStylist(ctx context.Context, stylistID int64) ([]*domain.TimeOffRange, error) {
	return r.list(ctx, "ListByStylist", squirrel.Eq{"stylist_id": stylistID})
}

func (r *Repository) list(ctx context.Context, method string, where squirrel.Sqlizer) ([]*domain.TimeOffRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(timeOffColumns...).
		From("time_off").
		Where(where).
		OrderBy("start_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, method, err)
	}
	defer rows.Close()

	result := make([]*domain.TimeOffRange, 0)
	for rows.Next() {
		t, err := scanTimeOff(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, method, err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, method, err)
	}
	return result, nil
}

// UpdateStatus условно меняет статус отгула
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.TimeOffStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_off").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrStatusChanged
	}
	return nil
}

// Delete удаляет отгул
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_off").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrTimeOffNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTimeOff(row rowScanner) (*domain.TimeOffRange, error) {
	var t domain.TimeOffRange
	var createdAt, updatedAt sql.NullTime
	err := row.Scan(
		&t.ID,
		&t.StylistID,
		&t.StartDate,
		&t.EndDate,
		&t.Status,
		&t.Reason,
		&t.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time
	return &t, nil
}
