package availability

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// StylistRef ссылка на стилиста: по ID или по отображаемому имени
type StylistRef struct {
	ID   int64
	Name string
}

// ByID ссылка по идентификатору
func ByID(id int64) StylistRef {
	return StylistRef{ID: id}
}

// ByName ссылка по отображаемому имени
func ByName(name string) StylistRef {
	return StylistRef{Name: name}
}

// OccupiedSet занятые слоты
type OccupiedSet map[types.TimeString]struct{}

// Has true, если слот занят
func (o OccupiedSet) Has(slot types.TimeString) bool {
	_, ok := o[slot]
	return ok
}

// Availability результат расчёта доступности
type Availability struct {
	StylistID     int64
	StylistName   string
	Date          time.Time
	DurationSlots int
	Unavailable   bool // стилист в одобренном отгуле
	Starts        []types.TimeString
}
