package update_order_status

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	updateOrderStatus "github.com/m04kA/SMC-SalonService/internal/usecase/update_order_status"
)

const (
	msgInvalidOrderID     = "некорректный ID заказа"
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	useCase UpdateOrderStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateOrderStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/orders/{orderId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := handlers.PathInt64(r, "orderId")
	if err != nil {
		h.logger.Warn("PATCH /orders/{id}/status - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /orders/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	target, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		handlers.RespondDomainError(w, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &updateOrderStatus.Request{
		CallerID: callerID,
		OrderID:  orderID,
		Target:   target,
	})
	if err != nil {
		h.logger.Warn("PATCH /orders/{id}/status - Failed: order_id=%d, caller_id=%d, target=%s, error=%v",
			orderID, callerID, target, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PATCH /orders/{id}/status - order_id=%d %s -> %s, stock_adjusted=%d",
		orderID, result.Previous, result.Status, result.StockAdjusted)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
