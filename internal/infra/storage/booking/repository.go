package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"stylist_id",
	"stylist_name",
	"customer_id",
	"service_id",
	"booking_date",
	"start_slot",
	"duration_slots",
	"status",
	"booking_timestamp",
	"service_price",
	"decline_reason",
	"cancellation_reason",
	"paid_at",
	"amount_paid",
	"created_at",
	"updated_at",
}

// StatusUpdate условный переход статуса: применяется, только если текущий статус равен From
type StatusUpdate struct {
	ID     int64
	From   domain.BookingStatus
	To     domain.BookingStatus
	Reason *string // decline_reason для declined, cancellation_reason для cancelled
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Вызывается внутри сериализуемой транзакции вместе с повторной проверкой занятости слотов
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"stylist_id",
			"stylist_name",
			"customer_id",
			"service_id",
			"booking_date",
			"start_slot",
			"duration_slots",
			"status",
			"booking_timestamp",
			"service_price",
		).
		Values(
			booking.StylistID,
			booking.StylistName,
			booking.CustomerID,
			booking.ServiceID,
			booking.Date,
			booking.StartSlot,
			booking.DurationSlots,
			booking.Status,
			booking.BookingTimestamp,
			booking.ServicePrice,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы статус читался и менялся атомарно
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByCustomerID получает бронирования клиента, опционально по статусу
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("booking_date DESC, start_slot DESC").
		Limit(domain.MaxBookingsListLimit)

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByStylistWithFilter получает бронирования стилиста с фильтрацией
//
// Для одной даты внутри транзакции добавляется FOR UPDATE: создание бронирования
// перечитывает занятость слотов в той же транзакции, что и вставка.
func (r *Repository) GetByStylistWithFilter(ctx context.Context, filter domain.StylistBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"stylist_id": filter.StylistID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)})
	}

	if filter.IsSingleDay() {
		selectBuilder = selectBuilder.OrderBy("start_slot ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_slot DESC").Limit(domain.MaxBookingsListLimit)
	}

	if dbmetrics.IsInTransaction(ctx) && filter.IsSingleDay() {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStylistWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStylistWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus переводит бронирование из From в To одним условным UPDATE
func (r *Repository) UpdateStatus(ctx context.Context, upd StatusUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", upd.To).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": upd.ID, "status": upd.From})

	switch upd.To {
	case domain.StatusDeclined:
		updateBuilder = updateBuilder.Set("decline_reason", upd.Reason)
	case domain.StatusCancelled:
		updateBuilder = updateBuilder.Set("cancellation_reason", upd.Reason)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusChanged
	}

	return nil
}

// MarkPaid завершает подтверждённое бронирование оплатой
func (r *Repository) MarkPaid(ctx context.Context, id int64, paidAt time.Time, amount decimal.Decimal) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCompleted).
		Set("paid_at", paidAt).
		Set("amount_paid", amount).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusConfirmed}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusChanged
	}

	return nil
}

// ListDueIDs возвращает ID бронирований в статусе status, начало которых раньше before
// Используется sweep-задачами: постранично по id после afterID, не более limit
func (r *Repository) ListDueIDs(ctx context.Context, status domain.BookingStatus, before time.Time, afterID int64, limit int) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("bookings").
		Where(squirrel.Eq{"status": status}).
		Where(squirrel.Gt{"id": afterID}).
		Where(squirrel.Lt{"booking_timestamp": before}).
		OrderBy("id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDueIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDueIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

// UpdateStatusBatch переводит пачку бронирований из from в to одним запросом
// Возвращает ID, которые действительно были обновлены (остальные уже сменили статус)
func (r *Repository) UpdateStatusBatch(ctx context.Context, ids []int64, from, to domain.BookingStatus) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ANY(?)", pq.Array(ids)).
		Where(squirrel.Eq{"status": from}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatusBatch - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatusBatch - execute update: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.StylistID,
		&booking.StylistName,
		&booking.CustomerID,
		&booking.ServiceID,
		&booking.Date,
		&booking.StartSlot,
		&booking.DurationSlots,
		&booking.Status,
		&booking.BookingTimestamp,
		&booking.ServicePrice,
		&booking.DeclineReason,
		&booking.CancellationReason,
		&booking.PaidAt,
		&booking.AmountPaid,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func scanIDs(rows *sql.Rows) ([]int64, error) {
	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scanIDs - scan id: %w", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanIDs - rows error: %w", ErrScanRow, err)
	}
	return ids, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
