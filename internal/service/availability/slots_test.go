package availability

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decimalHours(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestValidStarts(t *testing.T) {
	tests := []struct {
		name     string
		slots    []string
		occupied []string
		k        int
		want     []string
	}{
		{
			name:     "contiguity is checked against the master sequence",
			slots:    []string{"09:00", "10:00", "11:00", "12:00"},
			occupied: []string{"11:00"},
			k:        2,
			want:     []string{"09:00"},
		},
		{
			name:  "all free single slot",
			slots: []string{"09:00", "10:00", "11:00"},
			k:     1,
			want:  []string{"09:00", "10:00", "11:00"},
		},
		{
			name:  "last slots cannot host a longer service",
			slots: []string{"09:00", "10:00", "11:00"},
			k:     2,
			want:  []string{"09:00", "10:00"},
		},
		{
			name:  "service longer than the day",
			slots: []string{"09:00", "10:00"},
			k:     3,
			want:  []string{},
		},
		{
			name:     "everything occupied",
			slots:    []string{"09:00", "10:00"},
			occupied: []string{"09:00", "10:00"},
			k:        1,
			want:     []string{},
		},
		{
			name:     "free slots split by an occupied one",
			slots:    []string{"09:00", "10:00", "11:00", "12:00", "13:00"},
			occupied: []string{"10:00", "13:00"},
			k:        2,
			want:     []string{"11:00"},
		},
		{
			name:  "zero duration treated as one slot",
			slots: []string{"09:00"},
			k:     0,
			want:  []string{"09:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidStarts(slotSet(tt.slots...), occupiedSet(tt.occupied...), tt.k)
			assert.Equal(t, timeStrings(tt.want...), got)
		})
	}
}

func TestMarkOccupied(t *testing.T) {
	slots := slotSet("09:00", "10:00", "11:00")

	t.Run("multi-slot booking occupies following slots", func(t *testing.T) {
		occ := make(OccupiedSet)
		assert.True(t, markOccupied(slots, occ, "09:00", 2))
		assert.Equal(t, occupiedSet("09:00", "10:00"), occ)
	})

	t.Run("stops at the end of the day", func(t *testing.T) {
		occ := make(OccupiedSet)
		assert.True(t, markOccupied(slots, occ, "11:00", 3))
		assert.Equal(t, occupiedSet("11:00"), occ)
	})

	t.Run("unknown start slot", func(t *testing.T) {
		occ := make(OccupiedSet)
		assert.False(t, markOccupied(slots, occ, "08:00", 1))
		assert.Empty(t, occ)
	})
}

func TestFitsDay(t *testing.T) {
	slots := slotSet("09:00", "10:00", "11:00", "12:00")
	occ := occupiedSet("11:00")

	assert.True(t, FitsDay(slots, occ, "09:00", 2))
	assert.False(t, FitsDay(slots, occ, "10:00", 2), "overlaps 11:00")
	assert.False(t, FitsDay(slots, occ, "12:00", 2), "runs off the end of the day")
	assert.False(t, FitsDay(slots, occ, "08:00", 1), "not in the calendar")
	assert.True(t, FitsDay(slots, occ, "12:00", 1))
}
