package calendar

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-SalonService/internal/service/calendar/models"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Service сервис календаря рабочих слотов салона
type Service struct {
	calendarRepo CalendarRepository
	cache        SlotsCache
	gate         AuthGate
	logger       Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(
	calendarRepo CalendarRepository,
	cache SlotsCache,
	gate AuthGate,
	logger Logger,
) *Service {
	return &Service{
		calendarRepo: calendarRepo,
		cache:        cache,
		gate:         gate,
		logger:       logger,
	}
}

// GetSlots возвращает список слотов салона
// Публичный метод - доступен всем
func (s *Service) GetSlots(ctx context.Context) (*models.SlotsResponse, error) {
	cal, err := s.calendarRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotConfigured) {
			s.logger.Warn("GetSlots: salon calendar is not configured")
			return nil, ErrCalendarNotConfigured
		}
		s.logger.Error("GetSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetSlots - repository error: %w", ErrInternal, err)
	}

	return models.FromCalendar(cal), nil
}

// UpdateSlots заменяет список слотов салона
// Доступно только администратору. После записи кэш слотов сбрасывается.
func (s *Service) UpdateSlots(ctx context.Context, req *models.UpdateSlotsRequest) (*models.SlotsResponse, error) {
	s.logger.Info("UpdateSlots: caller=%d, slots=%d", req.CallerID, len(req.Slots))

	if _, err := s.gate.Require(ctx, req.CallerID, domain.RoleAdmin); err != nil {
		s.logger.Warn("UpdateSlots: access denied for user=%d: %v", req.CallerID, err)
		return nil, err
	}

	set, err := normalizeSlots(req.Slots)
	if err != nil {
		s.logger.Warn("UpdateSlots: validation failed: %v", err)
		return nil, err
	}

	cal, err := s.calendarRepo.Upsert(ctx, set.Strings())
	if err != nil {
		s.logger.Error("UpdateSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateSlots - repository error: %w", ErrInternal, err)
	}

	// Устаревший кэш истечёт по TTL, поэтому ошибка сброса не фатальна
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("UpdateSlots: failed to invalidate slots cache: %v", err)
	}

	s.logger.Info("UpdateSlots: calendar updated: %s", strings.Join(cal.Slots, ","))
	return models.FromCalendar(cal), nil
}

// normalizeSlots сортирует слоты и проверяет их набор
func normalizeSlots(raw []string) (domain.SlotSet, error) {
	slots := make([]types.TimeString, len(raw))
	for i, r := range raw {
		slots[i] = types.TimeString(strings.TrimSpace(r))
		if err := slots[i].Validate(); err != nil {
			return domain.SlotSet{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].IsBefore(slots[j]) })

	set, err := domain.NewSlotSet(slots)
	if err != nil {
		return domain.SlotSet{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return set, nil
}
