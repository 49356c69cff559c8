package record_payment

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	finalizePayment "github.com/m04kA/SMC-SalonService/internal/usecase/finalize_payment"
)

const (
	msgInvalidID          = "некорректный ID"
	msgInvalidRequestBody = "некорректное тело запроса"
)

// Handler фиксирует оплату бронирования или заказа.
// Один тип на экземпляр, параметр пути задаётся при создании.
type Handler struct {
	useCase    FinalizePaymentUseCase
	sourceType domain.IncomeType
	pathParam  string
	logger     Logger
}

func NewHandler(useCase FinalizePaymentUseCase, sourceType domain.IncomeType, pathParam string, logger Logger) *Handler {
	return &Handler{
		useCase:    useCase,
		sourceType: sourceType,
		pathParam:  pathParam,
		logger:     logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payment
// и POST /api/v1/orders/{orderId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sourceID, err := handlers.PathInt64(r, h.pathParam)
	if err != nil {
		h.logger.Warn("POST /%ss/{id}/payment - Invalid ID: %v", h.sourceType, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req PaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /%ss/{id}/payment - Invalid request body: %v", h.sourceType, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &finalizePayment.Request{
		CallerID:   callerID,
		SourceType: h.sourceType,
		SourceID:   sourceID,
		Amount:     req.Amount,
	})
	if err != nil {
		h.logger.Warn("POST /%ss/{id}/payment - Failed: id=%d, caller_id=%d, error=%v", h.sourceType, sourceID, callerID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /%ss/{id}/payment - id=%d amount=%s already=%t",
		h.sourceType, sourceID, result.Amount.StringFixed(2), result.AlreadyProcessed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
