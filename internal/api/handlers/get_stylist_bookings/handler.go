package get_stylist_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
)

const (
	msgInvalidStylistID = "некорректный ID стилиста"
	msgInvalidParams    = "некорректные параметры запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stylists/{stylistId}/bookings
// Query params: startDate, endDate, status, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID, err := handlers.PathInt64(r, "stylistId")
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/bookings - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	serviceReq, err := ToServiceRequest(r, callerID, stylistID)
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetStylistBookings(r.Context(), serviceReq)
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/bookings - Failed: stylist_id=%d, caller_id=%d, error=%v",
			stylistID, callerID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /stylists/{id}/bookings - Bookings retrieved: stylist_id=%d, count=%d",
		stylistID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
