package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

func TestNewSlotSet(t *testing.T) {
	set, err := NewSlotSet([]types.TimeString{"09:00", "10:00", "11:00", "14:00"})
	require.NoError(t, err)

	assert.Equal(t, 4, set.Len())
	assert.Equal(t, 3, set.IndexOf("14:00"))
	assert.Equal(t, -1, set.IndexOf("13:00"))
	assert.Equal(t, []string{"09:00", "10:00", "11:00", "14:00"}, set.Strings())
}

func TestNewSlotSet_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		slots []types.TimeString
	}{
		{name: "empty", slots: nil},
		{name: "not ascending", slots: []types.TimeString{"10:00", "09:00"}},
		{name: "duplicate", slots: []types.TimeString{"10:00", "10:00"}},
		{name: "malformed", slots: []types.TimeString{"10:00", "1100"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSlotSet(tt.slots)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestSlotSet_AllReturnsCopy(t *testing.T) {
	set := MustSlotSet("09:00", "10:00")
	all := set.All()
	all[0] = "23:00"
	assert.Equal(t, types.TimeString("09:00"), set.At(0))
}

func TestDurationSlotsFromHours(t *testing.T) {
	tests := []struct {
		hours string
		want  int
	}{
		{hours: "0", want: 1},
		{hours: "0.5", want: 1},
		{hours: "1", want: 1},
		{hours: "1.25", want: 2},
		{hours: "2", want: 2},
		{hours: "2.01", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.hours, func(t *testing.T) {
			assert.Equal(t, tt.want, DurationSlotsFromHours(decimal.RequireFromString(tt.hours)))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-10-15")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-15", d.Format(DateFormat))

	for _, bad := range []string{"2025-1-5", "15.10.2025", "2025-10-15T10:00:00Z", "", "2025-02-30"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidArgument, bad)
	}
}

func TestTimeOffRange_Blocks(t *testing.T) {
	r := TimeOffRange{
		StartDate: mustDate(t, "2025-10-10"),
		EndDate:   mustDate(t, "2025-10-12"),
		Status:    TimeOffApproved,
	}

	assert.True(t, r.Blocks(mustDate(t, "2025-10-10")))
	assert.True(t, r.Blocks(mustDate(t, "2025-10-12")))
	assert.False(t, r.Blocks(mustDate(t, "2025-10-13")))
	assert.False(t, r.Blocks(mustDate(t, "2025-10-09")))

	r.Status = TimeOffPending
	assert.False(t, r.Blocks(mustDate(t, "2025-10-11")))
}

func TestCrossesLowStock(t *testing.T) {
	assert.True(t, CrossesLowStock(6, 5))
	assert.True(t, CrossesLowStock(10, -2))
	assert.False(t, CrossesLowStock(5, 4))
	assert.False(t, CrossesLowStock(8, 6))
	assert.False(t, CrossesLowStock(3, 9))
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := ParseDate(s)
	require.NoError(t, err)
	return parsed
}
