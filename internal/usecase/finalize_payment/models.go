package finalize_payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/usecase/adjust_stock"
)

// Request модель запроса на фиксацию оплаты
type Request struct {
	CallerID   int64
	SourceType domain.IncomeType
	SourceID   int64
	Amount     *decimal.Decimal // если не задано, берётся цена услуги или сумма заказа
}

// Response результат фиксации оплаты
type Response struct {
	SourceType       domain.IncomeType
	SourceID         int64
	Amount           decimal.Decimal
	PaidAt           time.Time
	AlreadyProcessed bool // оплата уже была зафиксирована ранее, ничего не изменено
	IncomeRecorded   bool // запись о доходе добавлена этим вызовом
}

// payment данные, зафиксированные в транзакции
type payment struct {
	customerID   int64
	amount       decimal.Decimal
	paidAt       time.Time
	already      bool
	stockResults []*adjust_stock.Result
}
