package transition_booking

import "github.com/m04kA/SMC-SalonService/internal/domain"

// Request модель запроса на смену статуса бронирования
type Request struct {
	CallerID  int64
	BookingID int64
	Target    domain.BookingStatus
	Reason    *string // причина отказа или отмены (опционально)
}

// Response результат перехода
type Response struct {
	BookingID int64
	Previous  domain.BookingStatus
	Status    domain.BookingStatus
	Changed   bool // false: бронирование уже было в терминальном статусе, ничего не изменено
}
