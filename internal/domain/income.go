package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomeType источник дохода
type IncomeType string

const (
	IncomeBooking IncomeType = "booking"
	IncomeOrder   IncomeType = "order"
)

// ParseIncomeType проверяет тип источника
func ParseIncomeType(s string) (IncomeType, error) {
	switch t := IncomeType(s); t {
	case IncomeBooking, IncomeOrder:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown income source type %q", ErrInvalidArgument, s)
	}
}

// IncomeRecord запись о доходе, только добавление
type IncomeRecord struct {
	ID        uuid.UUID
	Amount    decimal.Decimal
	Type      IncomeType
	SourceID  int64
	CreatedAt time.Time
}

// NewIncomeRecord создает запись с новым идентификатором
func NewIncomeRecord(t IncomeType, sourceID int64, amount decimal.Decimal, now time.Time) *IncomeRecord {
	return &IncomeRecord{
		ID:        uuid.New(),
		Amount:    amount,
		Type:      t,
		SourceID:  sourceID,
		CreatedAt: now,
	}
}

// TotalIncome накопительный счётчик дохода
type TotalIncome struct {
	Amount    decimal.Decimal
	UpdatedAt time.Time
}
