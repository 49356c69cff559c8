package timeoff

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/timeoff/models"
)

func validateCreate(req *models.CreateTimeOffRequest) (time.Time, time.Time, error) {
	if req.StylistID <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: stylistId must be positive", ErrInvalidInput)
	}

	start, err := domain.ParseDate(req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: startDate: %w", ErrInvalidInput, err)
	}
	end, err := domain.ParseDate(req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endDate: %w", ErrInvalidInput, err)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > domain.MaxTimeOffRangeDays {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: range of %d days exceeds %d", ErrInvalidInput, days, domain.MaxTimeOffRangeDays)
	}

	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxReasonLength {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: reason longer than %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	return start, end, nil
}
