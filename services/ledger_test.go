package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/services"
)

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
		wantErr  error
	}{
		{"two whole days", day0, day0.AddDate(0, 0, 2), 2, nil},
		{"one day", day0, day0.AddDate(0, 0, 1), 1, nil},
		{"partial day rounds up", day0, day0.Add(30 * time.Hour), 2, nil},
		{"under a day rounds up", day0, day0.Add(3 * time.Hour), 1, nil},
		{"equal dates rejected", day0, day0, 0, services.ErrInvalidDateRange},
		{"inverted range rejected", day0.AddDate(0, 0, 1), day0, 0, services.ErrInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := services.Nights(tt.checkIn, tt.checkOut)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemainingNights(t *testing.T) {
	assert.Equal(t, 2, services.RemainingNights(day0, day0.AddDate(0, 0, 2)))
	assert.Equal(t, 1, services.RemainingNights(day0, day0.Add(20*time.Hour)))
	// a stay past its check-out owes nothing more
	assert.Equal(t, 0, services.RemainingNights(day0.AddDate(0, 0, 3), day0))
}

func TestRoomCharge(t *testing.T) {
	assert.InDelta(t, 100, services.RoomCharge(50, 2), 0.001)
	assert.InDelta(t, 0, services.RoomCharge(50, 0), 0.001)
	assert.InDelta(t, 149.97, services.RoomCharge(49.99, 3), 0.001)
}

func TestExtraBedCharge(t *testing.T) {
	assert.InDelta(t, 60, services.ExtraBedCharge(2, 15, 2), 0.001)
	assert.InDelta(t, 0, services.ExtraBedCharge(0, 15, 2), 0.001)
}

func TestApplyDiscount(t *testing.T) {
	got, err := services.ApplyDiscount(100, 10)
	require.NoError(t, err)
	assert.InDelta(t, 90, got, 0.001)

	got, err = services.ApplyDiscount(100, 0)
	require.NoError(t, err)
	assert.InDelta(t, 100, got, 0.001)

	got, err = services.ApplyDiscount(100, 100)
	require.NoError(t, err)
	assert.InDelta(t, 0, got, 0.001)

	_, err = services.ApplyDiscount(100, -1)
	require.ErrorIs(t, err, services.ErrInvalidDiscount)

	_, err = services.ApplyDiscount(100, 101)
	require.ErrorIs(t, err, services.ErrInvalidDiscount)
}

func TestPendingBalance(t *testing.T) {
	assert.InDelta(t, 100, services.PendingBalance(100, 0, 0), 0.001)
	assert.InDelta(t, 40, services.PendingBalance(100, 20, 40), 0.001)
	assert.InDelta(t, 0, services.PendingBalance(100, 50, 50), 0.001)
	// negative results are surfaced, not clamped
	assert.InDelta(t, -10, services.PendingBalance(100, 50, 60), 0.001)
}

func TestCents(t *testing.T) {
	assert.InDelta(t, 0.1, services.Cents(0.1+0.2-0.2), 0.0001)
	assert.InDelta(t, 1.23, services.Cents(1.23456), 0.0001)
	assert.InDelta(t, 2.0, services.Cents(1.999), 0.0001)
}
