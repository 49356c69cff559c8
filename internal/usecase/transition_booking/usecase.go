package transition_booking

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
)

// UseCase ручные переходы статуса бронирования
type UseCase struct {
	bookingRepo BookingRepository
	gate        AuthGate
	notifier    Notifier
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	gate AuthGate,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		gate:        gate,
		notifier:    notifier,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute переводит бронирование в Target
//
// Права:
//   - confirmed, declined, missed: стилист или администратор
//   - cancelled: клиент бронирования, стилист или администратор
//
// Переход из терминального статуса возвращает Changed=false без ошибки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionBooking: caller=%d, booking=%d, target=%s", req.CallerID, req.BookingID, req.Target)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("TransitionBooking: validation failed: %v", err)
		return nil, err
	}

	var (
		resp    *Response
		booking *domain.Booking
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Роль читается в той же транзакции; переходы персонала проверяются до чтения записи
		if req.Target != domain.StatusCancelled {
			if _, err := uc.gate.Require(txCtx, req.CallerID, domain.StaffRoles...); err != nil {
				return err
			}
		}

		var err error
		booking, err = uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return fmt.Errorf("%w: id=%d", ErrBookingNotFound, req.BookingID)
			}
			uc.logger.Error("TransitionBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: get booking: %w", ErrInternal, err)
		}

		if req.Target == domain.StatusCancelled {
			if _, err := uc.gate.RequireOwnerOr(txCtx, req.CallerID, booking.CustomerID, domain.StaffRoles...); err != nil {
				return err
			}
		}

		noop, err := domain.CheckBookingTransition(booking.Status, req.Target)
		if err != nil {
			uc.logger.Warn("TransitionBooking: booking=%d: %v", booking.ID, err)
			return err
		}
		if noop {
			resp = &Response{BookingID: booking.ID, Previous: booking.Status, Status: booking.Status}
			return nil
		}

		err = uc.bookingRepo.UpdateStatus(txCtx, bookingRepo.StatusUpdate{
			ID:     booking.ID,
			From:   booking.Status,
			To:     req.Target,
			Reason: req.Reason,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				return ErrConcurrentUpdate
			}
			uc.logger.Error("TransitionBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: update status: %w", ErrInternal, err)
		}

		resp = &Response{BookingID: booking.ID, Previous: booking.Status, Status: req.Target, Changed: true}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !resp.Changed {
		uc.logger.Info("TransitionBooking: booking=%d already %s, nothing to do", resp.BookingID, resp.Status)
		return resp, nil
	}

	uc.logger.Info("TransitionBooking: booking=%d %s -> %s", resp.BookingID, resp.Previous, resp.Status)
	uc.notifyCustomer(booking, req)

	return resp, nil
}

func (uc *UseCase) notifyCustomer(booking *domain.Booking, req *Request) {
	var title string
	switch req.Target {
	case domain.StatusConfirmed:
		title = "Запись подтверждена"
	case domain.StatusDeclined:
		title = "Запись отклонена"
	case domain.StatusCancelled:
		if req.CallerID == booking.CustomerID {
			return
		}
		title = "Запись отменена"
	default:
		return
	}

	body := fmt.Sprintf("%s %s, стилист %s", booking.Date.Format(domain.DateFormat), booking.StartSlot, booking.StylistName)
	if req.Reason != nil && *req.Reason != "" {
		body += ". Причина: " + *req.Reason
	}

	uc.notifier.Notify(notifier.Notification{
		RecipientID:    booking.CustomerID,
		Title:          title,
		Body:           body,
		LinkedRecordID: fmt.Sprintf("booking:%d", booking.ID),
	})
}

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.CallerID <= 0 {
		return fmt.Errorf("%w: callerID must be positive", ErrInvalidInput)
	}
	if _, err := domain.ParseBookingStatus(string(req.Target)); err != nil {
		return err
	}

	switch req.Target {
	case domain.StatusConfirmed, domain.StatusDeclined, domain.StatusCancelled, domain.StatusMissed:
	default:
		return fmt.Errorf("%w: %s", ErrTargetNotAllowed, req.Target)
	}

	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: max %d characters", ErrReasonTooLong, domain.MaxReasonLength)
	}
	return nil
}
