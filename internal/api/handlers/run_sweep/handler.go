package run_sweep

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// SweepResponse HTTP response model
type SweepResponse struct {
	Sweep   string `json:"sweep"`
	Scanned int    `json:"scanned"`
	Updated int    `json:"updated"`
	Failed  int    `json:"failed"`
}

type Handler struct {
	runner SweepRunner
	gate   AuthGate
	logger Logger
}

func NewHandler(runner SweepRunner, gate AuthGate, logger Logger) *Handler {
	return &Handler{
		runner: runner,
		gate:   gate,
		logger: logger,
	}
}

// Handle POST /api/v1/admin/sweeps/{sweep}
// Ручной запуск той же задачи, что выполняет планировщик
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sweep := mux.Vars(r)["sweep"]

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	if _, err := h.gate.Require(r.Context(), callerID, domain.RoleAdmin); err != nil {
		h.logger.Warn("POST /admin/sweeps/%s - Denied: caller_id=%d, error=%v", sweep, callerID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	result, err := h.runner.Run(r.Context(), sweep)
	if err != nil {
		h.logger.Warn("POST /admin/sweeps/%s - Failed: %v", sweep, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /admin/sweeps/%s - caller_id=%d updated=%d failed=%d",
		sweep, callerID, result.Updated, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, &SweepResponse{
		Sweep:   result.Sweep,
		Scanned: result.Scanned,
		Updated: result.Updated,
		Failed:  result.Failed,
	})
}
