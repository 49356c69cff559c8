package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	gate        AuthGate
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	gate AuthGate,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		gate:        gate,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Доступно клиенту бронирования и персоналу салона
func (s *Service) GetByID(ctx context.Context, callerID, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, callerID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	if _, err := s.gate.RequireOwnerOr(ctx, callerID, booking.CustomerID, domain.StaffRoles...); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", callerID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings история бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%d, status=%v", req.CustomerID, req.Status)

	if _, err := s.gate.RequireOwnerOr(ctx, req.CallerID, req.CustomerID, domain.StaffRoles...); err != nil {
		return nil, err
	}

	var status *domain.BookingStatus
	if req.Status != nil {
		st, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		status = &st
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.CustomerID, status)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: fetched %d bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetStylistBookings бронирования стилиста за период
// Доступно только персоналу. Без дат возвращаются все активные бронирования.
//
// Примеры:
// - на дату: StartDate и EndDate указывают на одну дату
// - за период: StartDate и EndDate указывают на разные даты
// - включая отменённые: IncludeInactive = true
func (s *Service) GetStylistBookings(ctx context.Context, req *models.GetStylistBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetStylistBookings: fetching bookings for stylist=%d, user=%d", req.StylistID, req.CallerID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", *req.StartDate, *req.EndDate)
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	if _, err := s.gate.Require(ctx, req.CallerID, domain.StaffRoles...); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetStylistBookings: invalid filter for stylist=%d: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidTimeRange)
	}

	bookings, err := s.bookingRepo.GetByStylistWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetStylistBookings: repository error for stylist=%d: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: GetStylistBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetStylistBookings: fetched %d bookings for stylist=%d", len(bookings), req.StylistID)
	return models.FromDomainBookingList(bookings), nil
}
