package get_income_total

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type Handler struct {
	income IncomeReader
	gate   AuthGate
	logger Logger
}

func NewHandler(income IncomeReader, gate AuthGate, logger Logger) *Handler {
	return &Handler{
		income: income,
		gate:   gate,
		logger: logger,
	}
}

// Handle GET /api/v1/income/total
// Накопительный доход салона, только для персонала
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	if _, err := h.gate.Require(r.Context(), callerID, domain.StaffRoles...); err != nil {
		h.logger.Warn("GET /income/total - Denied: caller_id=%d, error=%v", callerID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	total, err := h.income.GetTotal(r.Context())
	if err != nil {
		h.logger.Error("GET /income/total - Failed to get total: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /income/total - caller_id=%d amount=%s", callerID, total.Amount)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(total))
}
