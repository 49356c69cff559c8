package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// validateRequest валидирует входные данные запроса и возвращает дату
func validateRequest(req *Request) (time.Time, error) {
	if req.CustomerID <= 0 {
		return time.Time{}, fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.StylistID < 0 || (req.StylistID == 0 && req.StylistName == "") {
		return time.Time{}, fmt.Errorf("%w: stylistId or stylistName is required", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return time.Time{}, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartSlot.IsZero() {
		return time.Time{}, fmt.Errorf("%w: startSlot is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartSlot.Validate(); err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid startSlot format: %v", ErrInvalidInput, err)
	}

	return domain.ParseDate(req.Date)
}

// validateNotPast проверяет, что визит ещё не начался (в часовом поясе салона)
func validateNotPast(date time.Time, start types.TimeString, now time.Time, loc *time.Location) (time.Time, error) {
	nowLocal := now.In(loc)
	if domain.DateOnly(date).Before(domain.DateOnly(nowLocal)) {
		return time.Time{}, fmt.Errorf("%w: %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}

	startsAt, err := start.On(date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	if !startsAt.After(now) {
		return time.Time{}, fmt.Errorf("%w: %s has already started", ErrInvalidTimeSlot, start)
	}
	return startsAt, nil
}
