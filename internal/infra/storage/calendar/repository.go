package calendar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

// calendarRowID в таблице salon_calendar всегда одна строка
const calendarRowID = 1

// Calendar сохранённый список слотов салона
type Calendar struct {
	Slots     []string
	UpdatedAt time.Time
}

// Repository репозиторий календаря слотов салона
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория календаря
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает список слотов
// Если календарь не задан, возвращает ErrCalendarNotConfigured
func (r *Repository) Get(ctx context.Context) (*Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slots", "updated_at").
		From("salon_calendar").
		Where(squirrel.Eq{"id": calendarRowID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var cal Calendar
	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(pq.Array(&cal.Slots), &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCalendarNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan calendar: %w", ErrScanRow, err)
	}
	if len(cal.Slots) == 0 {
		return nil, ErrCalendarNotConfigured
	}

	cal.UpdatedAt = updatedAt.Time
	return &cal, nil
}

// Upsert сохраняет список слотов (создает или заменяет)
func (r *Repository) Upsert(ctx context.Context, slots []string) (*Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("salon_calendar").
		Columns("id", "slots").
		Values(calendarRowID, pq.Array(slots)).
		Suffix("ON CONFLICT (id) DO UPDATE SET slots = EXCLUDED.slots, updated_at = NOW() RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, err)
	}

	return &Calendar{Slots: slots, UpdatedAt: updatedAt.Time}, nil
}
