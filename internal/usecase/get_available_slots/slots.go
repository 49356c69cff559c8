package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// dropStartedSlots убирает слоты, которые уже начались
// Для прошедших дат возвращает пустой список, для будущих список без изменений
func dropStartedSlots(slots []types.TimeString, date, now time.Time, loc *time.Location) []types.TimeString {
	nowLocal := now.In(loc)
	today := domain.DateOnly(nowLocal)
	day := domain.DateOnly(date)

	if day.Before(today) {
		return []types.TimeString{}
	}
	if day.After(today) {
		return slots
	}

	current := types.NewTimeString(nowLocal)
	result := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if slot.IsAfter(current) {
			result = append(result, slot)
		}
	}
	return result
}
