package availability

import (
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// ValidStarts возвращает слоты, с которых может начаться услуга длиной k слотов
//
// Слот с индексом i подходит, только если свободны слоты i..i+k-1 основной
// последовательности. Смежность проверяется по индексам календаря, а не по
// наличию k свободных слотов где-либо: при занятом 11:00 старт в 10:00 для
// двухслотовой услуги невозможен, даже если 12:00 свободен.
func ValidStarts(slots domain.SlotSet, occupied OccupiedSet, k int) []types.TimeString {
	if k < 1 {
		k = 1
	}

	n := slots.Len()
	starts := make([]types.TimeString, 0, n)

	// run[i] длина свободной серии, начинающейся с i
	run := make([]int, n+1)
	for i := n - 1; i >= 0; i-- {
		if occupied.Has(slots.At(i)) {
			run[i] = 0
			continue
		}
		run[i] = run[i+1] + 1
	}

	for i := 0; i < n; i++ {
		if run[i] >= k {
			starts = append(starts, slots.At(i))
		}
	}
	return starts
}

// markOccupied помечает слоты start..start+k-1, обрезая по концу дня
// Возвращает false, если стартового слота нет в календаре
func markOccupied(slots domain.SlotSet, occupied OccupiedSet, start types.TimeString, k int) bool {
	i := slots.IndexOf(start)
	if i < 0 {
		return false
	}
	if k < 1 {
		k = 1
	}
	for j := i; j < i+k && j < slots.Len(); j++ {
		occupied[slots.At(j)] = struct{}{}
	}
	return true
}

// FitsDay true, если k слотов начиная со start помещаются в календарь и свободны
func FitsDay(slots domain.SlotSet, occupied OccupiedSet, start types.TimeString, k int) bool {
	i := slots.IndexOf(start)
	if i < 0 || i+k > slots.Len() {
		return false
	}
	for j := i; j < i+k; j++ {
		if occupied.Has(slots.At(j)) {
			return false
		}
	}
	return true
}
