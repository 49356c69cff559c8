package get_stylist_bookings

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос к сервису из query параметров
// Даты и статус проверяет сервис.
func ToServiceRequest(r *http.Request, callerID, stylistID int64) (*models.GetStylistBookingsRequest, error) {
	req := &models.GetStylistBookingsRequest{
		CallerID:  callerID,
		StylistID: stylistID,
		StartDate: handlers.QueryString(r, "startDate"),
		EndDate:   handlers.QueryString(r, "endDate"),
		Status:    handlers.QueryString(r, "status"),
	}

	if raw := r.URL.Query().Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
