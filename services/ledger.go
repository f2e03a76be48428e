package services

import (
	"math"
	"time"
)

// Ledger primitives: pure value computations for charges, balances and
// discounts. No I/O here; every lifecycle operation derives its money fields
// through these so the totals stay reproducible.

// centEpsilon is the tolerance used when comparing money values that went
// through float arithmetic. Anything below half a minor unit is rounding noise.
const centEpsilon = 0.005

// Cents rounds v to two decimal places.
func Cents(v float64) float64 {
	return math.Round(v*100) / 100
}

// Nights returns the ceiling of (checkOut - checkIn) in whole days.
func Nights(checkIn, checkOut time.Time) (int, error) {
	if !checkOut.After(checkIn) {
		return 0, ErrInvalidDateRange
	}
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24)), nil
}

// RemainingNights is the ceiling of (checkOut - now) in whole days, floored at
// zero for stays already past their check-out date.
func RemainingNights(now, checkOut time.Time) int {
	n := int(math.Ceil(checkOut.Sub(now).Hours() / 24))
	if n < 0 {
		return 0
	}
	return n
}

// RoomCharge is the nightly base price over the whole stay.
func RoomCharge(basePrice float64, nights int) float64 {
	return Cents(basePrice * float64(nights))
}

// ExtraBedCharge is the per-bed nightly rate over the whole stay.
func ExtraBedCharge(extraBeds int, perBedRate float64, nights int) float64 {
	return Cents(float64(extraBeds) * perBedRate * float64(nights))
}

// ApplyDiscount reduces amount by percent. Percent must be within [0,100].
func ApplyDiscount(amount, percent float64) (float64, error) {
	if percent < 0 || percent > 100 {
		return 0, ErrInvalidDiscount
	}
	return Cents(amount * (1 - percent/100)), nil
}

// PendingBalance is the outstanding amount owed on a reservation. Callers must
// treat a negative result as an error to surface, never silently clamp it.
func PendingBalance(total, advance, paymentsSum float64) float64 {
	return Cents(total - advance - paymentsSum)
}
