package update_calendar_slots

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/calendar/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/calendar/slots
// Список заменяется целиком, только администратор
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req models.UpdateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /calendar/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.CallerID = callerID

	result, err := h.service.UpdateSlots(r.Context(), &req)
	if err != nil {
		h.logger.Warn("PUT /calendar/slots - Failed: caller_id=%d, error=%v", callerID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PUT /calendar/slots - Calendar updated: caller_id=%d, slots=%d", callerID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
