package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	StylistID   int64  // ID стилиста (или StylistName)
	StylistName string // Отображаемое имя стилиста, если ID не задан
	ServiceID   int64  // ID услуги
	Date        string // Дата в формате YYYY-MM-DD, разбирается строго
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date          time.Time
	StylistID     int64
	StylistName   string
	ServiceID     int64
	DurationSlots int                // Длительность услуги в слотах
	Unavailable   bool               // Стилист в отгуле
	Slots         []types.TimeString // Допустимые начала, по возрастанию
}
