package adjust_stock

import (
	adjustStock "github.com/m04kA/SMC-SalonService/internal/usecase/adjust_stock"
)

// AdjustmentRequest HTTP request model
type AdjustmentRequest struct {
	Variant  string `json:"variant"`
	Delta    int    `json:"delta"`
	EventKey string `json:"eventKey"` // повтор с тем же ключом ничего не меняет
}

// AdjustmentResponse HTTP response model
type AdjustmentResponse struct {
	Applied   bool   `json:"applied"`
	ProductID int64  `json:"productId"`
	Variant   string `json:"variant"`
	OldStock  int    `json:"oldStock"`
	NewStock  int    `json:"newStock"`
	LowStock  bool   `json:"lowStock"`
}

func (r *AdjustmentRequest) ToUseCaseRequest(callerID, productID int64) *adjustStock.Request {
	return &adjustStock.Request{
		CallerID:   callerID,
		ProductID:  productID,
		VariantKey: r.Variant,
		Delta:      r.Delta,
		EventKey:   r.EventKey,
	}
}

func FromUseCaseResult(res *adjustStock.Result) *AdjustmentResponse {
	return &AdjustmentResponse{
		Applied:   res.Applied,
		ProductID: res.ProductID,
		Variant:   res.VariantKey,
		OldStock:  res.OldStock,
		NewStock:  res.NewStock,
		LowStock:  res.LowStock,
	}
}
