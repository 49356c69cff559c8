package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning", input: "09:00"},
		{name: "valid evening", input: "23:59"},
		{name: "missing zero padding", input: "9:00", wantErr: true},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("15:00").IsAfter("14:59"))
	assert.False(t, TimeString("12:00").IsBefore("12:00"))
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("salon", 3*60*60)
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	at, err := TimeString("14:15").On(date, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 15, 14, 15, 0, 0, loc), at)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan([]byte("08:00")))
	assert.Equal(t, TimeString("08:00"), ts)

	assert.Error(t, ts.Scan(42))
}
