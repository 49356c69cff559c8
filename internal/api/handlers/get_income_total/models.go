package get_income_total

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// TotalResponse HTTP response model
type TotalResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	UpdatedAt *string         `json:"updatedAt,omitempty"` // нет, пока дохода не было
}

func FromDomain(total *domain.TotalIncome) *TotalResponse {
	resp := &TotalResponse{Amount: total.Amount}
	if !total.UpdatedAt.IsZero() {
		updatedAt := total.UpdatedAt.Format(time.RFC3339)
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
