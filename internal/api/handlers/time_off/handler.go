package time_off

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/timeoff/models"
)

const (
	msgInvalidID          = "некорректный ID отгула"
	msgInvalidStylistID   = "некорректный ID стилиста"
	msgInvalidRequestBody = "некорректное тело запроса"
)

// Handler ручки управления отгулами стилистов
type Handler struct {
	service TimeOffService
	logger  Logger
}

func NewHandler(service TimeOffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/time-off
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req models.CreateTimeOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /time-off - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.CallerID = callerID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.logger.Warn("POST /time-off - Failed: caller_id=%d, stylist_id=%d, error=%v", callerID, req.StylistID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /time-off - Created: id=%d, stylist_id=%d, status=%s", result.ID, result.StylistID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Approve PATCH /api/v1/time-off/{id}/approve
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, "approve", h.service.Approve)
}

// Reject PATCH /api/v1/time-off/{id}/reject
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, "reject", h.service.Reject)
}

func (h *Handler) review(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	apply func(ctx context.Context, callerID, id int64) (*models.TimeOffResponse, error),
) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	result, err := apply(r.Context(), callerID, id)
	if err != nil {
		h.logger.Warn("PATCH /time-off/{id}/%s - Failed: id=%d, caller_id=%d, error=%v", action, id, callerID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PATCH /time-off/{id}/%s - id=%d status=%s", action, id, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/time-off/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	if err := h.service.Delete(r.Context(), callerID, id); err != nil {
		h.logger.Warn("DELETE /time-off/{id} - Failed: id=%d, caller_id=%d, error=%v", id, callerID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListByStylist GET /api/v1/stylists/{stylistId}/time-off
func (h *Handler) ListByStylist(w http.ResponseWriter, r *http.Request) {
	stylistID, err := handlers.PathInt64(r, "stylistId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	result, err := h.service.ListByStylist(r.Context(), callerID, stylistID)
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/time-off - Failed: stylist_id=%d, caller_id=%d, error=%v", stylistID, callerID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
