package get_available_slots

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
)

const (
	msgInvalidStylistID = "некорректный ID стилиста"
	msgMissingStylist   = "нужен ID или имя стилиста"
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingDate      = "дата обязательна"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/stylists/{stylistId}/available-slots
// и GET /api/v1/available-slots?stylistName=
// Query params: serviceId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &getAvailableSlots.Request{
		StylistName: r.URL.Query().Get("stylistName"),
		Date:        r.URL.Query().Get("date"),
	}

	if _, ok := mux.Vars(r)["stylistId"]; ok {
		stylistID, err := handlers.PathInt64(r, "stylistId")
		if err != nil {
			h.logger.Warn("GET /available-slots - Invalid stylist ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStylistID)
			return
		}
		req.StylistID = stylistID
	}

	if req.StylistID == 0 && req.StylistName == "" {
		handlers.RespondBadRequest(w, msgMissingStylist)
		return
	}

	serviceID, err := handlers.QueryInt64(r, "serviceId")
	if err != nil || serviceID <= 0 {
		h.logger.Warn("GET /available-slots - Invalid service ID: %q", r.URL.Query().Get("serviceId"))
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}
	req.ServiceID = serviceID

	if req.Date == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		h.logger.Warn("GET /available-slots - Failed: stylist_id=%d, stylist_name=%q, service_id=%d, date=%s, error=%v",
			req.StylistID, req.StylistName, req.ServiceID, req.Date, err)
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
