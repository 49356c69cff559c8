package domain

import "github.com/shopspring/decimal"

// SalonService услуга салона (стрижка, окрашивание, ...)
type SalonService struct {
	ID            int64
	Name          string
	DurationHours decimal.Decimal
	Price         decimal.Decimal
}

// DurationSlots длительность в слотах: ceil(durationHours), минимум 1.
// Предполагает слоты шириной один час.
func (s *SalonService) DurationSlots() int {
	return DurationSlotsFromHours(s.DurationHours)
}

// DurationSlotsFromHours ceil(hours), минимум 1
func DurationSlotsFromHours(hours decimal.Decimal) int {
	k := int(hours.Ceil().IntPart())
	if k < 1 {
		return 1
	}
	return k
}
