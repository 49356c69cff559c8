package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID  int64            // ID клиента (вызывающий)
	StylistID   int64            // ID стилиста (или StylistName)
	StylistName string           // Отображаемое имя стилиста
	ServiceID   int64            // ID услуги
	Date        string           // Дата YYYY-MM-DD
	StartSlot   types.TimeString // Слот начала, например "10:00"
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID               int64
	CustomerID       int64
	StylistID        int64
	StylistName      string
	ServiceID        int64
	Date             time.Time
	StartSlot        types.TimeString
	DurationSlots    int
	Status           string
	BookingTimestamp time.Time
	ServicePrice     decimal.Decimal
	CreatedAt        time.Time
}
