package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/availability"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	resolver     Resolver
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// location часовой пояс салона: по нему определяется "сегодня" и прошедшие слоты
func NewUseCase(resolver Resolver, location *time.Location, logger Logger) *UseCase {
	return &UseCase{
		resolver:     resolver,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: stylist=%d name=%q, service=%d, date=%s",
		req.StylistID, req.StylistName, req.ServiceID, req.Date)

	// 1. Валидация входных данных
	date, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	ref := availability.ByID(req.StylistID)
	if req.StylistID == 0 {
		ref = availability.ByName(req.StylistName)
	}

	// 2. Расчёт доступности
	res, err := uc.resolver.Resolve(ctx, ref, date, req.ServiceID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: resolve failed: %v", err)
		return nil, err
	}

	// 3. Убираем уже начавшиеся слоты
	slots := dropStartedSlots(res.Starts, date, uc.timeProvider.Now(), uc.location)

	uc.logger.Info("GetAvailableSlots: stylist=%d date=%s, %d slots available",
		res.StylistID, date.Format(domain.DateFormat), len(slots))

	return &Response{
		Date:          res.Date,
		StylistID:     res.StylistID,
		StylistName:   res.StylistName,
		ServiceID:     req.ServiceID,
		DurationSlots: res.DurationSlots,
		Unavailable:   res.Unavailable,
		Slots:         slots,
	}, nil
}

// validateRequest валидирует входные данные запроса и разбирает дату
func validateRequest(req *Request) (time.Time, error) {
	if req.StylistID < 0 {
		return time.Time{}, fmt.Errorf("%w: stylistID must be positive", ErrInvalidInput)
	}
	if req.StylistID == 0 && req.StylistName == "" {
		return time.Time{}, fmt.Errorf("%w: stylistId or stylistName is required", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return time.Time{}, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	return domain.ParseDate(req.Date)
}
