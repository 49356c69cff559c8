package update_booking_status

import (
	"github.com/m04kA/SMC-SalonService/internal/domain"
	transitionBooking "github.com/m04kA/SMC-SalonService/internal/usecase/transition_booking"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string  `json:"status"` // confirmed, declined, cancelled, missed
	Reason *string `json:"reason,omitempty"`
}

// StatusResponse HTTP response model
type StatusResponse struct {
	BookingID int64  `json:"bookingId"`
	Previous  string `json:"previous"`
	Status    string `json:"status"`
	Changed   bool   `json:"changed"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateStatusRequest) ToUseCaseRequest(callerID, bookingID int64) (*transitionBooking.Request, error) {
	target, err := domain.ParseBookingStatus(r.Status)
	if err != nil {
		return nil, err
	}

	return &transitionBooking.Request{
		CallerID:  callerID,
		BookingID: bookingID,
		Target:    target,
		Reason:    r.Reason,
	}, nil
}

func FromUseCaseResponse(resp *transitionBooking.Response) *StatusResponse {
	return &StatusResponse{
		BookingID: resp.BookingID,
		Previous:  string(resp.Previous),
		Status:    string(resp.Status),
		Changed:   resp.Changed,
	}
}
