package update_order_status

import (
	updateOrderStatus "github.com/m04kA/SMC-SalonService/internal/usecase/update_order_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// StatusResponse HTTP response model
type StatusResponse struct {
	OrderID       int64  `json:"orderId"`
	Previous      string `json:"previous"`
	Status        string `json:"status"`
	Changed       bool   `json:"changed"`
	StockAdjusted int    `json:"stockAdjusted"`
}

func FromUseCaseResponse(resp *updateOrderStatus.Response) *StatusResponse {
	return &StatusResponse{
		OrderID:       resp.OrderID,
		Previous:      string(resp.Previous),
		Status:        string(resp.Status),
		Changed:       resp.Changed,
		StockAdjusted: resp.StockAdjusted,
	}
}
