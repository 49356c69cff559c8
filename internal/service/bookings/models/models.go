package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модели

// GetCustomerBookingsRequest запрос на получение бронирований клиента
type GetCustomerBookingsRequest struct {
	CallerID   int64   `json:"-"`
	CustomerID int64   `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// GetStylistBookingsRequest запрос на получение бронирований стилиста
type GetStylistBookingsRequest struct {
	CallerID        int64   `json:"-"`
	StylistID       int64   `json:"stylistId"`
	StartDate       *string `json:"startDate,omitempty"`       // "2026-01-15" (опционально)
	EndDate         *string `json:"endDate,omitempty"`         // включительно (опционально)
	Status          *string `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool    `json:"includeInactive,omitempty"` // Включить терминальные статусы
}

// ToDomainFilter конвертирует request в domain фильтр с проверкой дат и статуса
func (r *GetStylistBookingsRequest) ToDomainFilter() (domain.StylistBookingsFilter, error) {
	filter := domain.StylistBookingsFilter{
		StylistID:       r.StylistID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.StartDate != nil {
		d, err := domain.ParseDate(*r.StartDate)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &d
	}
	if r.EndDate != nil {
		d, err := domain.ParseDate(*r.EndDate)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &d
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64           `json:"id"`
	CustomerID    int64           `json:"customerId"`
	StylistID     int64           `json:"stylistId"`
	StylistName   string          `json:"stylistName"`
	ServiceID     int64           `json:"serviceId"`
	Date          string          `json:"date"`      // "2026-10-15"
	StartSlot     string          `json:"startSlot"` // "10:00"
	DurationSlots int             `json:"durationSlots"`
	Status        string          `json:"status"`
	StartsAt      time.Time       `json:"startsAt"`
	ServicePrice  decimal.Decimal `json:"servicePrice"`

	DeclineReason      *string          `json:"declineReason,omitempty"`
	CancellationReason *string          `json:"cancellationReason,omitempty"`
	PaidAt             *time.Time       `json:"paidAt,omitempty"`
	AmountPaid         *decimal.Decimal `json:"amountPaid,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		StylistID:          b.StylistID,
		StylistName:        b.StylistName,
		ServiceID:          b.ServiceID,
		Date:               b.Date.Format(domain.DateFormat),
		StartSlot:          b.StartSlot.String(),
		DurationSlots:      b.DurationSlots,
		Status:             string(b.Status),
		StartsAt:           b.BookingTimestamp,
		ServicePrice:       b.ServicePrice,
		DeclineReason:      b.DeclineReason,
		CancellationReason: b.CancellationReason,
		PaidAt:             b.PaidAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.AmountPaid.Valid {
		amount := b.AmountPaid.Decimal
		resp.AmountPaid = &amount
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
