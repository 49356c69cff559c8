package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckBookingTransition(t *testing.T) {
	tests := []struct {
		name     string
		from, to BookingStatus
		wantNoop bool
		wantErr  bool
	}{
		{name: "pending confirm", from: StatusPending, to: StatusConfirmed},
		{name: "pending decline", from: StatusPending, to: StatusDeclined},
		{name: "pending cancel", from: StatusPending, to: StatusCancelled},
		{name: "pending expire", from: StatusPending, to: StatusExpired},
		{name: "confirmed complete", from: StatusConfirmed, to: StatusCompleted},
		{name: "confirmed missed", from: StatusConfirmed, to: StatusMissed},
		{name: "confirmed cancel", from: StatusConfirmed, to: StatusCancelled},
		{name: "pending complete is illegal", from: StatusPending, to: StatusCompleted, wantErr: true},
		{name: "confirmed expire is illegal", from: StatusConfirmed, to: StatusExpired, wantErr: true},
		{name: "confirmed decline is illegal", from: StatusConfirmed, to: StatusDeclined, wantErr: true},
		{name: "declined confirm is noop", from: StatusDeclined, to: StatusConfirmed, wantNoop: true},
		{name: "completed complete is noop", from: StatusCompleted, to: StatusCompleted, wantNoop: true},
		{name: "expired cancel is noop", from: StatusExpired, to: StatusCancelled, wantNoop: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noop, err := CheckBookingTransition(tt.from, tt.to)
			assert.Equal(t, tt.wantNoop, noop)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				assert.ErrorIs(t, err, ErrInvalidState)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBookingStatus_ActiveAndTerminalArePartition(t *testing.T) {
	all := append(append([]BookingStatus{}, ActiveStatuses...), TerminalStatuses...)
	assert.Len(t, all, 7)
	for _, s := range all {
		assert.NotEqual(t, s.IsActive(), s.IsTerminal(), string(s))
	}
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("confirmed")
	assert.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	_, err = ParseBookingStatus("Confirmed")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCheckOrderTransition(t *testing.T) {
	_, err := CheckOrderTransition(OrderPendingPickup, OrderReadyForPickup)
	assert.NoError(t, err)

	_, err = CheckOrderTransition(OrderPendingPickup, OrderAbandoned)
	assert.ErrorIs(t, err, ErrInvalidState)

	noop, err := CheckOrderTransition(OrderCancelled, OrderCompleted)
	assert.NoError(t, err)
	assert.True(t, noop)
}
