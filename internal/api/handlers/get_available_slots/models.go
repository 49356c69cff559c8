package get_available_slots

import (
	"github.com/m04kA/SMC-SalonService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date          string   `json:"date"`
	StylistID     int64    `json:"stylistId"`
	StylistName   string   `json:"stylistName"`
	ServiceID     int64    `json:"serviceId"`
	DurationSlots int      `json:"durationSlots"`
	Unavailable   bool     `json:"unavailable"`
	Slots         []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, s.String())
	}

	return &AvailableSlotsResponse{
		Date:          resp.Date.Format(domain.DateFormat),
		StylistID:     resp.StylistID,
		StylistName:   resp.StylistName,
		ServiceID:     resp.ServiceID,
		DurationSlots: resp.DurationSlots,
		Unavailable:   resp.Unavailable,
		Slots:         slots,
	}
}
