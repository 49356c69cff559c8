package timeoff

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	timeOffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/timeoff"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonService/internal/service/timeoff/models"
)

// Service сервис отгулов стилистов
//
// Стилист создаёт заявку на себя (pending), администратор создаёт сразу одобренный
// отгул и рассматривает заявки. Блокируют запись только одобренные отгулы.
type Service struct {
	timeOffRepo TimeOffRepository
	userRepo    UserRepository
	gate        AuthGate
	notifier    Notifier
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса отгулов
func NewService(
	timeOffRepo TimeOffRepository,
	userRepo UserRepository,
	gate AuthGate,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		timeOffRepo: timeOffRepo,
		userRepo:    userRepo,
		gate:        gate,
		notifier:    notifier,
		txManager:   txManager,
		logger:      logger,
	}
}

// Create создает отгул
func (s *Service) Create(ctx context.Context, req *models.CreateTimeOffRequest) (*models.TimeOffResponse, error) {
	s.logger.Info("Create: time-off for stylist=%d %s..%s by user=%d", req.StylistID, req.StartDate, req.EndDate, req.CallerID)

	start, end, err := validateCreate(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	caller, err := s.gate.RequireOwnerOr(ctx, req.CallerID, req.StylistID, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	stylist, err := s.userRepo.GetByID(ctx, req.StylistID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrStylistNotFound, req.StylistID)
		}
		s.logger.Error("Create: failed to get stylist id=%d: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: get stylist: %w", ErrInternal, err)
	}
	if stylist.Role != domain.RoleWorker {
		s.logger.Warn("Create: user=%d is %s, not a stylist", stylist.ID, stylist.Role)
		return nil, fmt.Errorf("%w: id=%d", ErrStylistNotFound, req.StylistID)
	}

	status := domain.TimeOffPending
	if caller.Role == domain.RoleAdmin {
		status = domain.TimeOffApproved
	}

	created, err := s.timeOffRepo.Create(ctx, &domain.TimeOffRange{
		StylistID: req.StylistID,
		StartDate: start,
		EndDate:   end,
		Status:    status,
		Reason:    req.Reason,
		CreatedBy: req.CallerID,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: time-off id=%d created with status=%s", created.ID, created.Status)
	return models.FromDomainTimeOff(created), nil
}

// Approve одобряет заявку (только администратор)
func (s *Service) Approve(ctx context.Context, callerID, id int64) (*models.TimeOffResponse, error) {
	return s.review(ctx, callerID, id, domain.TimeOffApproved)
}

// Reject отклоняет заявку (только администратор)
func (s *Service) Reject(ctx context.Context, callerID, id int64) (*models.TimeOffResponse, error) {
	return s.review(ctx, callerID, id, domain.TimeOffRejected)
}

func (s *Service) review(ctx context.Context, callerID, id int64, to domain.TimeOffStatus) (*models.TimeOffResponse, error) {
	s.logger.Info("Review: time-off id=%d -> %s by user=%d", id, to, callerID)

	var reviewed *domain.TimeOffRange
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.gate.Require(txCtx, callerID, domain.RoleAdmin); err != nil {
			return err
		}

		t, err := s.getForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if !domain.CanTransitionTimeOff(t.Status, to) {
			return fmt.Errorf("%w: id=%d is %s", ErrNotPending, id, t.Status)
		}

		if err := s.timeOffRepo.UpdateStatus(txCtx, id, t.Status, to); err != nil {
			if errors.Is(err, timeOffRepo.ErrStatusChanged) {
				return fmt.Errorf("%w: id=%d", ErrNotPending, id)
			}
			s.logger.Error("Review: failed to update time-off id=%d: %v", id, err)
			return fmt.Errorf("%w: update status: %w", ErrInternal, err)
		}

		t.Status = to
		reviewed = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	title := "Отгул одобрен"
	if to == domain.TimeOffRejected {
		title = "Отгул отклонён"
	}
	s.notifier.Notify(notifier.Notification{
		RecipientID:    reviewed.StylistID,
		Title:          title,
		Body:           fmt.Sprintf("%s - %s", reviewed.StartDate.Format(domain.DateFormat), reviewed.EndDate.Format(domain.DateFormat)),
		LinkedRecordID: fmt.Sprintf("timeoff:%d", reviewed.ID),
	})

	s.logger.Info("Review: time-off id=%d is now %s", id, to)
	return models.FromDomainTimeOff(reviewed), nil
}

// Delete удаляет отгул
// Стилист может удалить свою заявку, пока она не рассмотрена; администратор - любую
func (s *Service) Delete(ctx context.Context, callerID, id int64) error {
	s.logger.Info("Delete: time-off id=%d by user=%d", id, callerID)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		t, err := s.getForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		caller, err := s.gate.RequireOwnerOr(txCtx, callerID, t.StylistID, domain.RoleAdmin)
		if err != nil {
			return err
		}
		if caller.Role != domain.RoleAdmin && t.Status != domain.TimeOffPending {
			s.logger.Warn("Delete: stylist=%d cannot delete %s time-off id=%d", callerID, t.Status, id)
			return fmt.Errorf("%w: id=%d is %s", ErrNotPending, id, t.Status)
		}

		if err := s.timeOffRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, timeOffRepo.ErrTimeOffNotFound) {
				return fmt.Errorf("%w: id=%d", ErrTimeOffNotFound, id)
			}
			s.logger.Error("Delete: repository error for id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
		}
		return nil
	})
}

// ListByStylist отгулы стилиста (сам стилист или администратор)
func (s *Service) ListByStylist(ctx context.Context, callerID, stylistID int64) (*models.TimeOffListResponse, error) {
	if _, err := s.gate.RequireOwnerOr(ctx, callerID, stylistID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	list, err := s.timeOffRepo.ListByStylist(ctx, stylistID)
	if err != nil {
		s.logger.Error("ListByStylist: repository error for stylist=%d: %v", stylistID, err)
		return nil, fmt.Errorf("%w: ListByStylist - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainTimeOffList(list), nil
}

func (s *Service) getForUpdate(ctx context.Context, id int64) (*domain.TimeOffRange, error) {
	t, err := s.timeOffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, timeOffRepo.ErrTimeOffNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrTimeOffNotFound, id)
		}
		s.logger.Error("getForUpdate: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: get time-off: %w", ErrInternal, err)
	}
	return t, nil
}
