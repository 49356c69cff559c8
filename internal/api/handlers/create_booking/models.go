package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	StylistID   int64  `json:"stylistId,omitempty"`
	StylistName string `json:"stylistName,omitempty"`
	ServiceID   int64  `json:"serviceId"`
	Date        string `json:"date"`      // "2026-10-15"
	StartSlot   string `json:"startSlot"` // "10:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64           `json:"id"`
	CustomerID    int64           `json:"customerId"`
	StylistID     int64           `json:"stylistId"`
	StylistName   string          `json:"stylistName"`
	ServiceID     int64           `json:"serviceId"`
	Date          string          `json:"date"`
	StartSlot     string          `json:"startSlot"`
	DurationSlots int             `json:"durationSlots"`
	Status        string          `json:"status"`
	StartsAt      string          `json:"startsAt"`
	ServicePrice  decimal.Decimal `json:"servicePrice"`
	CreatedAt     string          `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	startSlot, err := types.NewTimeStringFromString(r.StartSlot)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID:  customerID,
		StylistID:   r.StylistID,
		StylistName: r.StylistName,
		ServiceID:   r.ServiceID,
		Date:        r.Date,
		StartSlot:   startSlot,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		CustomerID:    resp.CustomerID,
		StylistID:     resp.StylistID,
		StylistName:   resp.StylistName,
		ServiceID:     resp.ServiceID,
		Date:          resp.Date.Format(domain.DateFormat),
		StartSlot:     resp.StartSlot.String(),
		DurationSlots: resp.DurationSlots,
		Status:        resp.Status,
		StartsAt:      resp.BookingTimestamp.Format(time.RFC3339),
		ServicePrice:  resp.ServicePrice,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
