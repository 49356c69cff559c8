package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
)

// TimeOffIndex отвечает, занят ли стилист в дату из-за одобренного отгула
type TimeOffIndex struct {
	users   UserRepository
	timeOff TimeOffRepository
	logger  Logger
}

func NewTimeOffIndex(users UserRepository, timeOff TimeOffRepository, logger Logger) *TimeOffIndex {
	return &TimeOffIndex{users: users, timeOff: timeOff, logger: logger}
}

// IsUnavailable проверяет дату в формате YYYY-MM-DD
// Некорректная дата отклоняется до любых запросов к хранилищу
func (x *TimeOffIndex) IsUnavailable(ctx context.Context, ref StylistRef, date string) (bool, error) {
	d, err := domain.ParseDate(date)
	if err != nil {
		return false, err
	}

	stylist, err := x.ResolveStylist(ctx, ref)
	if err != nil {
		return false, err
	}

	return x.IsUnavailableOn(ctx, stylist.ID, d)
}

// IsUnavailableOn проверка для уже найденного стилиста
func (x *TimeOffIndex) IsUnavailableOn(ctx context.Context, stylistID int64, date time.Time) (bool, error) {
	ranges, err := x.timeOff.ListApprovedStartingBy(ctx, stylistID, date)
	if err != nil {
		x.logger.Error("TimeOffIndex: failed to list time-off for stylist=%d: %v", stylistID, err)
		return false, fmt.Errorf("%w: list time-off: %w", ErrInternal, err)
	}

	for _, r := range ranges {
		if r.Blocks(date) {
			return true, nil
		}
	}
	return false, nil
}

// ResolveStylist находит стилиста по ID или по имени
// Имя должно однозначно указывать на одного пользователя с ролью worker
func (x *TimeOffIndex) ResolveStylist(ctx context.Context, ref StylistRef) (*domain.User, error) {
	if ref.ID > 0 {
		user, err := x.users.GetByID(ctx, ref.ID)
		if err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				return nil, fmt.Errorf("%w: id=%d", ErrStylistNotFound, ref.ID)
			}
			x.logger.Error("TimeOffIndex: failed to get stylist id=%d: %v", ref.ID, err)
			return nil, fmt.Errorf("%w: get stylist: %w", ErrInternal, err)
		}
		if user.Role != domain.RoleWorker {
			return nil, fmt.Errorf("%w: user id=%d is not a stylist", ErrStylistNotFound, ref.ID)
		}
		return user, nil
	}

	name := strings.TrimSpace(ref.Name)
	if name == "" {
		return nil, ErrInvalidStylistRef
	}

	users, err := x.users.FindByName(ctx, name, domain.RoleWorker)
	if err != nil {
		x.logger.Error("TimeOffIndex: failed to find stylist name=%q: %v", name, err)
		return nil, fmt.Errorf("%w: find stylist: %w", ErrInternal, err)
	}

	switch len(users) {
	case 0:
		return nil, fmt.Errorf("%w: name=%q", ErrStylistNotFound, name)
	case 1:
		return users[0], nil
	default:
		x.logger.Warn("TimeOffIndex: stylist name=%q matches %d users", name, len(users))
		return nil, fmt.Errorf("%w: name=%q", ErrStylistAmbiguous, name)
	}
}
