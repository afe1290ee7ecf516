package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
)

func TestCanTransition(t *testing.T) {
	all := []ReservationStatus{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow}
	allowed := map[[2]ReservationStatus]bool{
		{StatusPending, StatusConfirmed}:   true,
		{StatusPending, StatusCancelled}:   true,
		{StatusConfirmed, StatusCancelled}: true,
		{StatusConfirmed, StatusCompleted}: true,
		{StatusConfirmed, StatusNoShow}:    true,
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]ReservationStatus{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestReservationStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
}

func TestReservation_TransitionTo(t *testing.T) {
	now := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	r := &Reservation{Status: StatusPending}

	err := r.TransitionTo(StatusCompleted, now)
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, StatusPending, r.Status)

	require.NoError(t, r.TransitionTo(StatusConfirmed, now))
	require.NoError(t, r.TransitionTo(StatusCancelled, now))
	require.NotNil(t, r.CancelledAt)
	assert.Equal(t, now, *r.CancelledAt)

	assert.ErrorIs(t, r.TransitionTo(StatusConfirmed, now), ErrIllegalTransition)
}

func TestReservation_Overlaps(t *testing.T) {
	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }
	r := &Reservation{StartAt: at(10, 0), EndAt: at(11, 0)}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"partial tail", at(10, 30), at(11, 30), true},
		{"partial head", at(9, 30), at(10, 15), true},
		{"inside", at(10, 15), at(10, 45), true},
		{"covering", at(9, 0), at(12, 0), true},
		{"touching end", at(11, 0), at(12, 0), false},
		{"touching start", at(9, 0), at(10, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Overlaps(tt.start, tt.end))
		})
	}
}

func TestHolder_Validate(t *testing.T) {
	tests := []struct {
		name    string
		holder  Holder
		wantErr bool
	}{
		{"user", Holder{UserID: ptr.Ptr(int64(7))}, false},
		{"guest with email", Holder{Guest: &GuestContact{Name: "Ivan", Email: "ivan@example.com"}}, false},
		{"guest with phone", Holder{Guest: &GuestContact{Name: "Ivan", Phone: "+70000000000"}}, false},
		{"empty", Holder{}, true},
		{"both", Holder{UserID: ptr.Ptr(int64(7)), Guest: &GuestContact{Name: "Ivan", Email: "a@b.c"}}, true},
		{"guest without contacts", Holder{Guest: &GuestContact{Name: "Ivan"}}, true},
		{"guest without name", Holder{Guest: &GuestContact{Email: "a@b.c"}}, true},
		{"zero user", Holder{UserID: ptr.Ptr(int64(0))}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.holder.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidHolder)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHolder_DisplayLabel(t *testing.T) {
	assert.Equal(t, "user #7", Holder{UserID: ptr.Ptr(int64(7))}.DisplayLabel())
	assert.Equal(t, "Ivan", Holder{Guest: &GuestContact{Name: " Ivan ", Email: "x@y.z"}}.DisplayLabel())
}
