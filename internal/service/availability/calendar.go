package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	calendarCache "github.com/m04kA/SMC-SalonService/internal/infra/cache/calendar"
	calendarRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Calendar источник рабочих слотов салона
type Calendar struct {
	repo   CalendarRepository
	cache  SlotsCache
	logger Logger
}

func NewCalendar(repo CalendarRepository, cache SlotsCache, logger Logger) *Calendar {
	return &Calendar{repo: repo, cache: cache, logger: logger}
}

// AllSlots возвращает упорядоченный набор слотов дня
// Незаданный календарь возвращается как ErrCalendarNotConfigured, значения по умолчанию нет
func (c *Calendar) AllSlots(ctx context.Context) (domain.SlotSet, error) {
	cached, err := c.cache.Get(ctx)
	switch {
	case err == nil:
		set, parseErr := parseSlots(cached)
		if parseErr == nil {
			return set, nil
		}
		c.logger.Warn("Calendar: cached slots are invalid, reloading: %v", parseErr)
	case !errors.Is(err, calendarCache.ErrCacheMiss):
		c.logger.Warn("Calendar: cache read failed: %v", err)
	}

	stored, err := c.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotConfigured) {
			c.logger.Error("Calendar: salon calendar is not configured")
			return domain.SlotSet{}, ErrCalendarNotConfigured
		}
		c.logger.Error("Calendar: failed to load calendar: %v", err)
		return domain.SlotSet{}, fmt.Errorf("%w: load calendar: %w", ErrInternal, err)
	}

	set, err := parseSlots(stored.Slots)
	if err != nil {
		c.logger.Error("Calendar: stored calendar is invalid: %v", err)
		return domain.SlotSet{}, fmt.Errorf("%w: stored calendar is invalid: %v", ErrInternal, err)
	}

	if err := c.cache.Set(ctx, set.Strings()); err != nil {
		c.logger.Warn("Calendar: cache write failed: %v", err)
	}

	return set, nil
}

func parseSlots(raw []string) (domain.SlotSet, error) {
	slots := make([]types.TimeString, len(raw))
	for i, s := range raw {
		slots[i] = types.TimeString(s)
	}
	return domain.NewSlotSet(slots)
}
