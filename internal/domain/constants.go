package domain

import (
	"fmt"
	"time"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// LowStockThreshold остаток, при достижении которого (сверху вниз) уходит уведомление
const LowStockThreshold = 5

// Business validation constants
const (
	MaxReasonLength      = 500
	MaxCalendarSlots     = 48
	MaxTimeOffRangeDays  = 366
	MaxStockDeltaAbs     = 10000
	DefaultSweepBatch    = 100
	MaxBookingsListLimit = 500
)

// ParseDate строго разбирает дату YYYY-MM-DD
// Не нормализует ввод: "2025-1-5" или "2025-01-05T00:00" отклоняются
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateFormat, s)
	if err != nil || d.Format(DateFormat) != s {
		return time.Time{}, fmt.Errorf("%w: malformed date %q, expected YYYY-MM-DD", ErrInvalidArgument, s)
	}
	return d, nil
}

// DateOnly отбрасывает время, оставляя календарную дату в UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
