package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonService/internal/service/availability"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	calendar     Calendar
	timeOff      TimeOffIndex
	occupancy    Occupancy
	gate         AuthGate
	notifier     Notifier
	txManager    TransactionManager
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	calendar Calendar,
	timeOff TimeOffIndex,
	occupancy Occupancy,
	gate AuthGate,
	notifier Notifier,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		calendar:     calendar,
		timeOff:      timeOff,
		occupancy:    occupancy,
		gate:         gate,
		notifier:     notifier,
		txManager:    txManager,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Занятость слотов перечитывается внутри той же сериализуемой транзакции,
// в которой вставляется бронирование: расчёт доступности на клиенте не доверяется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, stylist=%d name=%q, service=%d, date=%s, slot=%s",
		req.CustomerID, req.StylistID, req.StylistName, req.ServiceID, req.Date, req.StartSlot)

	// 1. Валидация входных данных
	date, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Визит не должен быть в прошлом
	startsAt, err := validateNotPast(date, req.StartSlot, uc.timeProvider.Now(), uc.location)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 3. Клиент должен существовать
	if _, err := uc.gate.Require(ctx, req.CustomerID, domain.RoleCustomer, domain.RoleWorker, domain.RoleAdmin); err != nil {
		return nil, err
	}

	// 4. Стилист
	ref := availability.ByID(req.StylistID)
	if req.StylistID == 0 {
		ref = availability.ByName(req.StylistName)
	}
	stylist, err := uc.timeOff.ResolveStylist(ctx, ref)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to resolve stylist: %v", err)
		return nil, err
	}

	// 5. Услуга и её длительность в слотах
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}
	k := service.DurationSlots()

	// 6. Календарь салона
	slots, err := uc.calendar.AllSlots(ctx)
	if err != nil {
		return nil, err
	}

	var result *domain.Booking

	// 7. Повторная проверка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Отгул стилиста
		unavailable, err := uc.timeOff.IsUnavailableOn(txCtx, stylist.ID, date)
		if err != nil {
			return err
		}
		if unavailable {
			uc.logger.Warn("CreateBooking: stylist=%d is on time-off on %s", stylist.ID, req.Date)
			return ErrStylistUnavailable
		}

		// 7.2. Занятые слоты (бронирования блокируются FOR UPDATE)
		occupied, err := uc.occupancy.OccupiedSlots(txCtx, stylist.ID, date, slots)
		if err != nil {
			return err
		}

		// 7.3. Слот должен быть в календаре, а услуга помещаться до конца дня
		start := slots.IndexOf(req.StartSlot)
		if start < 0 {
			uc.logger.Warn("CreateBooking: slot %s is not in the salon calendar", req.StartSlot)
			return fmt.Errorf("%w: %s is not in the salon calendar", ErrInvalidTimeSlot, req.StartSlot)
		}
		if start+k > slots.Len() {
			uc.logger.Warn("CreateBooking: service id=%d (%d slots) does not fit from %s", service.ID, k, req.StartSlot)
			return fmt.Errorf("%w: %d slots from %s", ErrServiceDoesNotFit, k, req.StartSlot)
		}

		// 7.4. Все k слотов свободны
		if !availability.FitsDay(slots, occupied, req.StartSlot, k) {
			uc.logger.Warn("CreateBooking: slot %s (%d slots) is taken for stylist=%d on %s",
				req.StartSlot, k, stylist.ID, req.Date)
			return ErrSlotNotAvailable
		}

		// 7.5. Создаём бронирование в статусе pending
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			StylistID:        stylist.ID,
			StylistName:      stylist.Name,
			CustomerID:       req.CustomerID,
			ServiceID:        service.ID,
			Date:             date,
			StartSlot:        req.StartSlot,
			DurationSlots:    k,
			Status:           domain.StatusPending,
			BookingTimestamp: startsAt,
			ServicePrice:     service.Price,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	uc.notifier.Notify(notifier.Notification{
		RecipientID:    stylist.ID,
		Title:          "Новая запись",
		Body:           fmt.Sprintf("%s %s: %s", req.Date, req.StartSlot, service.Name),
		LinkedRecordID: fmt.Sprintf("booking:%d", result.ID),
	})

	return &Response{
		ID:               result.ID,
		CustomerID:       result.CustomerID,
		StylistID:        result.StylistID,
		StylistName:      result.StylistName,
		ServiceID:        result.ServiceID,
		Date:             result.Date,
		StartSlot:        result.StartSlot,
		DurationSlots:    result.DurationSlots,
		Status:           string(result.Status),
		BookingTimestamp: result.BookingTimestamp,
		ServicePrice:     result.ServicePrice,
		CreatedAt:        result.CreatedAt,
	}, nil
}
