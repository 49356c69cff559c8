package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Resolver рассчитывает слоты, с которых можно начать новое бронирование
type Resolver struct {
	calendar  *Calendar
	timeOff   *TimeOffIndex
	occupancy *Occupancy
	services  ServiceRepository
	logger    Logger
}

func NewResolver(calendar *Calendar, timeOff *TimeOffIndex, occupancy *Occupancy, services ServiceRepository, logger Logger) *Resolver {
	return &Resolver{
		calendar:  calendar,
		timeOff:   timeOff,
		occupancy: occupancy,
		services:  services,
		logger:    logger,
	}
}

// AvailableStarts возвращает допустимые начала по возрастанию
func (r *Resolver) AvailableStarts(ctx context.Context, ref StylistRef, date string, serviceID int64) ([]types.TimeString, error) {
	d, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}

	res, err := r.Resolve(ctx, ref, d, serviceID)
	if err != nil {
		return nil, err
	}
	return res.Starts, nil
}

// Resolve полный расчёт доступности
//  1. отгул: пустой результат без частичных данных
//  2. занятые слоты
//  3. длительность услуги k
//  4. старты, для которых свободны k последовательных слотов календаря
func (r *Resolver) Resolve(ctx context.Context, ref StylistRef, date time.Time, serviceID int64) (*Availability, error) {
	date = domain.DateOnly(date)

	stylist, err := r.timeOff.ResolveStylist(ctx, ref)
	if err != nil {
		return nil, err
	}

	res := &Availability{
		StylistID:   stylist.ID,
		StylistName: stylist.Name,
		Date:        date,
		Starts:      []types.TimeString{},
	}

	unavailable, err := r.timeOff.IsUnavailableOn(ctx, stylist.ID, date)
	if err != nil {
		return nil, err
	}
	if unavailable {
		r.logger.Info("Resolver: stylist=%d is on time-off on %s", stylist.ID, date.Format(domain.DateFormat))
		res.Unavailable = true
		return res, nil
	}

	slots, err := r.calendar.AllSlots(ctx)
	if err != nil {
		return nil, err
	}

	occupied, err := r.occupancy.OccupiedSlots(ctx, stylist.ID, date, slots)
	if err != nil {
		return nil, err
	}

	k, err := r.DurationSlots(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	res.DurationSlots = k
	res.Starts = ValidStarts(slots, occupied, k)
	return res, nil
}

// DurationSlots длительность услуги в слотах
func (r *Resolver) DurationSlots(ctx context.Context, serviceID int64) (int, error) {
	service, err := r.services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return 0, fmt.Errorf("%w: id=%d", ErrServiceNotFound, serviceID)
		}
		r.logger.Error("Resolver: failed to get service id=%d: %v", serviceID, err)
		return 0, fmt.Errorf("%w: get service: %w", ErrInternal, err)
	}
	return service.DurationSlots(), nil
}
