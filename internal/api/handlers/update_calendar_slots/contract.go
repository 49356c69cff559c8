package update_calendar_slots

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/calendar/models"
)

type CalendarService interface {
	UpdateSlots(ctx context.Context, req *models.UpdateSlotsRequest) (*models.SlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
