package record_payment

import (
	"time"

	"github.com/shopspring/decimal"

	finalizePayment "github.com/m04kA/SMC-SalonService/internal/usecase/finalize_payment"
)

// PaymentRequest HTTP request model, тело может быть пустым
type PaymentRequest struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// PaymentResponse HTTP response model
type PaymentResponse struct {
	SourceType       string          `json:"sourceType"`
	SourceID         int64           `json:"sourceId"`
	Amount           decimal.Decimal `json:"amount"`
	PaidAt           string          `json:"paidAt"`
	AlreadyProcessed bool            `json:"alreadyProcessed"`
}

func FromUseCaseResponse(resp *finalizePayment.Response) *PaymentResponse {
	return &PaymentResponse{
		SourceType:       string(resp.SourceType),
		SourceID:         resp.SourceID,
		Amount:           resp.Amount,
		PaidAt:           resp.PaidAt.Format(time.RFC3339),
		AlreadyProcessed: resp.AlreadyProcessed,
	}
}
