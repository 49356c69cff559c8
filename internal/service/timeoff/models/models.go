package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// CreateTimeOffRequest запрос на создание отгула
type CreateTimeOffRequest struct {
	CallerID  int64   `json:"-"`
	StylistID int64   `json:"stylistId"`
	StartDate string  `json:"startDate"` // "2026-01-15"
	EndDate   string  `json:"endDate"`   // включительно
	Reason    *string `json:"reason,omitempty"`
}

// TimeOffResponse ответ с данными отгула
type TimeOffResponse struct {
	ID        int64     `json:"id"`
	StylistID int64     `json:"stylistId"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Status    string    `json:"status"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedBy int64     `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TimeOffListResponse список отгулов
type TimeOffListResponse struct {
	TimeOff []TimeOffResponse `json:"timeOff"`
}

// FromDomainTimeOff конвертирует domain модель в DTO
func FromDomainTimeOff(t *domain.TimeOffRange) *TimeOffResponse {
	if t == nil {
		return nil
	}
	return &TimeOffResponse{
		ID:        t.ID,
		StylistID: t.StylistID,
		StartDate: t.StartDate.Format(domain.DateFormat),
		EndDate:   t.EndDate.Format(domain.DateFormat),
		Status:    string(t.Status),
		Reason:    t.Reason,
		CreatedBy: t.CreatedBy,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// FromDomainTimeOffList конвертирует список отгулов
func FromDomainTimeOffList(list []*domain.TimeOffRange) *TimeOffListResponse {
	resp := &TimeOffListResponse{TimeOff: make([]TimeOffResponse, 0, len(list))}
	for _, t := range list {
		resp.TimeOff = append(resp.TimeOff, *FromDomainTimeOff(t))
	}
	return resp
}
