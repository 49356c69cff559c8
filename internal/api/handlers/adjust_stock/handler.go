package adjust_stock

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
)

const (
	msgInvalidProductID   = "некорректный ID товара"
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	useCase AdjustStockUseCase
	logger  Logger
}

func NewHandler(useCase AdjustStockUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/products/{productId}/stock-adjustments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	productID, err := handlers.PathInt64(r, "productId")
	if err != nil {
		h.logger.Warn("POST /products/{id}/stock-adjustments - Invalid product ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req AdjustmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /products/{id}/stock-adjustments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(callerID, productID))
	if err != nil {
		h.logger.Warn("POST /products/{id}/stock-adjustments - Failed: product_id=%d, variant=%s, key=%s, error=%v",
			productID, req.Variant, req.EventKey, err)
		handlers.RespondDomainError(w, err)
		return
	}

	status := http.StatusCreated
	if !result.Applied {
		status = http.StatusOK
	}
	handlers.RespondJSON(w, status, FromUseCaseResult(result))
}
