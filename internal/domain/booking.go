package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusDeclined  BookingStatus = "declined"
	StatusMissed    BookingStatus = "missed"
	StatusExpired   BookingStatus = "expired"
	StatusCompleted BookingStatus = "completed"
)

// ActiveStatuses статусы, при которых бронирование занимает слоты
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses конечные статусы, освобождают слоты
var TerminalStatuses = []BookingStatus{
	StatusCancelled,
	StatusDeclined,
	StatusMissed,
	StatusExpired,
	StatusCompleted,
}

// bookingTransitions допустимые переходы из нетерминальных статусов
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusDeclined, StatusCancelled, StatusExpired},
	StatusConfirmed: {StatusCompleted, StatusMissed, StatusCancelled},
}

// ErrInvalidTransition переход не разрешён графом состояний
var ErrInvalidTransition = fmt.Errorf("%w: domain: illegal status transition", ErrInvalidState)

// ParseBookingStatus проверяет, что строка является известным статусом
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if status.IsActive() || status.IsTerminal() {
		return status, nil
	}
	return "", fmt.Errorf("%w: unknown booking status %q", ErrInvalidArgument, s)
}

// IsActive pending или confirmed
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsTerminal конечный статус
func (s BookingStatus) IsTerminal() bool {
	for _, t := range TerminalStatuses {
		if s == t {
			return true
		}
	}
	return false
}

// CheckBookingTransition проверяет переход from -> to.
// Переход из терминального статуса ничего не меняет (noop=true, err=nil).
// Переход, которого нет в графе, возвращает ErrInvalidTransition.
func CheckBookingTransition(from, to BookingStatus) (noop bool, err error) {
	if from.IsTerminal() {
		return true, nil
	}
	for _, allowed := range bookingTransitions[from] {
		if allowed == to {
			return false, nil
		}
	}
	return false, fmt.Errorf("%w: booking %s -> %s", ErrInvalidTransition, from, to)
}

// Booking запись о визите клиента к стилисту
type Booking struct {
	ID               int64
	StylistID        int64
	StylistName      string
	CustomerID       int64
	ServiceID        int64
	Date             time.Time // только дата
	StartSlot        types.TimeString
	DurationSlots    int
	Status           BookingStatus
	BookingTimestamp time.Time // начало визита в часовом поясе салона

	ServicePrice       decimal.Decimal
	DeclineReason      *string
	CancellationReason *string
	PaidAt             *time.Time
	AmountPaid         decimal.NullDecimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies slots
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// IsPaid завершено оплатой
func (b *Booking) IsPaid() bool {
	return b.Status == StatusCompleted && b.PaidAt != nil
}

// StylistBookingsFilter фильтр бронирований стилиста
type StylistBookingsFilter struct {
	StylistID       int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли терминальные статусы
}

// IsSingleDay true, если фильтр ограничен одной датой
func (f StylistBookingsFilter) IsSingleDay() bool {
	return f.StartDate != nil && f.EndDate != nil && f.StartDate.Equal(*f.EndDate)
}
