package time_off

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/timeoff/models"
)

type TimeOffService interface {
	Create(ctx context.Context, req *models.CreateTimeOffRequest) (*models.TimeOffResponse, error)
	Approve(ctx context.Context, callerID, id int64) (*models.TimeOffResponse, error)
	Reject(ctx context.Context, callerID, id int64) (*models.TimeOffResponse, error)
	Delete(ctx context.Context, callerID, id int64) error
	ListByStylist(ctx context.Context, callerID, stylistID int64) (*models.TimeOffListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
