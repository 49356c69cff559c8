package models

import (
	"time"

	calendarRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/calendar"
)

// UpdateSlotsRequest запрос на замену списка слотов салона
type UpdateSlotsRequest struct {
	CallerID int64    `json:"-"`
	Slots    []string `json:"slots"` // "HH:MM", порядок не важен
}

// SlotsResponse список слотов салона
type SlotsResponse struct {
	Slots     []string  `json:"slots"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromCalendar конвертирует сохранённый календарь в DTO
func FromCalendar(c *calendarRepo.Calendar) *SlotsResponse {
	slots := c.Slots
	if slots == nil {
		slots = []string{}
	}
	return &SlotsResponse{Slots: slots, UpdatedAt: c.UpdatedAt}
}
