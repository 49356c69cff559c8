package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
)

// Occupancy занятость слотов стилиста активными бронированиями
type Occupancy struct {
	bookings BookingRepository
	services ServiceRepository
	logger   Logger
}

func NewOccupancy(bookings BookingRepository, services ServiceRepository, logger Logger) *Occupancy {
	return &Occupancy{bookings: bookings, services: services, logger: logger}
}

// OccupiedSlots слоты, занятые активными бронированиями стилиста на дату
// Внутри транзакции бронирования читаются с FOR UPDATE (см. booking.Repository)
func (o *Occupancy) OccupiedSlots(ctx context.Context, stylistID int64, date time.Time, slots domain.SlotSet) (OccupiedSet, error) {
	day := domain.DateOnly(date)
	bookings, err := o.bookings.GetByStylistWithFilter(ctx, domain.StylistBookingsFilter{
		StylistID: stylistID,
		StartDate: &day,
		EndDate:   &day,
	})
	if err != nil {
		o.logger.Error("Occupancy: failed to get bookings stylist=%d date=%s: %v",
			stylistID, day.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: get bookings: %w", ErrInternal, err)
	}

	occupied := make(OccupiedSet)
	durations := make(map[int64]int)

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}

		k, err := o.durationOf(ctx, b, durations)
		if err != nil {
			return nil, err
		}

		if !markOccupied(slots, occupied, b.StartSlot, k) {
			// Календарь изменился после создания бронирования
			o.logger.Warn("Occupancy: booking id=%d starts at %s which is not in the calendar, skipped",
				b.ID, b.StartSlot)
		}
	}

	return occupied, nil
}

// durationOf длительность бронирования в слотах
// Старые записи без duration_slots берут длительность из услуги
func (o *Occupancy) durationOf(ctx context.Context, b *domain.Booking, cache map[int64]int) (int, error) {
	if b.DurationSlots > 0 {
		return b.DurationSlots, nil
	}
	if k, ok := cache[b.ServiceID]; ok {
		return k, nil
	}

	service, err := o.services.GetByID(ctx, b.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			o.logger.Warn("Occupancy: service id=%d of booking id=%d not found, assuming 1 slot", b.ServiceID, b.ID)
			cache[b.ServiceID] = 1
			return 1, nil
		}
		o.logger.Error("Occupancy: failed to get service id=%d: %v", b.ServiceID, err)
		return 0, fmt.Errorf("%w: get service: %w", ErrInternal, err)
	}

	k := service.DurationSlots()
	cache[b.ServiceID] = k
	return k, nil
}
