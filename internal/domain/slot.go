package domain

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// SlotSet упорядоченный набор слотов рабочего дня салона
// Слоты имеют ширину один час и идут подряд, позиция в наборе является ключом сортировки
type SlotSet struct {
	slots []types.TimeString
	index map[types.TimeString]int
}

// NewSlotSet создает набор слотов; слоты должны быть валидными, уникальными и строго возрастать
func NewSlotSet(slots []types.TimeString) (SlotSet, error) {
	if len(slots) == 0 {
		return SlotSet{}, fmt.Errorf("%w: calendar has no slots", ErrInvalidArgument)
	}
	if len(slots) > MaxCalendarSlots {
		return SlotSet{}, fmt.Errorf("%w: calendar has %d slots, max %d", ErrInvalidArgument, len(slots), MaxCalendarSlots)
	}

	copied := make([]types.TimeString, len(slots))
	index := make(map[types.TimeString]int, len(slots))
	for i, s := range slots {
		if err := s.Validate(); err != nil {
			return SlotSet{}, fmt.Errorf("%w: slot %d: %v", ErrInvalidArgument, i, err)
		}
		if i > 0 && !copied[i-1].IsBefore(s) {
			return SlotSet{}, fmt.Errorf("%w: slot %s must be after %s", ErrInvalidArgument, s, copied[i-1])
		}
		copied[i] = s
		index[s] = i
	}

	return SlotSet{slots: copied, index: index}, nil
}

// MustSlotSet как NewSlotSet, но паникует при ошибке (для тестов и констант)
func MustSlotSet(slots ...types.TimeString) SlotSet {
	set, err := NewSlotSet(slots)
	if err != nil {
		panic(err)
	}
	return set
}

func (s SlotSet) Len() int {
	return len(s.slots)
}

func (s SlotSet) At(i int) types.TimeString {
	return s.slots[i]
}

// IndexOf возвращает позицию слота или -1
func (s SlotSet) IndexOf(slot types.TimeString) int {
	if i, ok := s.index[slot]; ok {
		return i
	}
	return -1
}

// All возвращает копию слотов
func (s SlotSet) All() []types.TimeString {
	out := make([]types.TimeString, len(s.slots))
	copy(out, s.slots)
	return out
}

// Strings слоты в виде строк (для кэша и хранилища)
func (s SlotSet) Strings() []string {
	out := make([]string, len(s.slots))
	for i, slot := range s.slots {
		out[i] = slot.String()
	}
	return out
}
