package services

import "errors"

// Sentinel errors returned by the lifecycle services. Controllers map these to
// HTTP statuses; services wrap them with fmt.Errorf("...: %w", err) where extra
// context helps, so callers must match with errors.Is.
var (
	// actor lacks permission; surfaced as-is, never retried
	ErrUnauthorized = errors.New("unauthorized")

	// validation: rejected before any persistence attempt
	ErrInvalidDateRange   = errors.New("invalid_date_range")
	ErrInvalidDiscount    = errors.New("invalid_discount")
	ErrInvalidAmount      = errors.New("invalid_amount")
	ErrMissingPaymentMode = errors.New("missing_payment_mode")

	// not found: terminal for the request
	ErrReservationNotFound  = errors.New("reservation_not_found")
	ErrRoomNotFound         = errors.New("room_not_found")
	ErrRoomTypeNotFound     = errors.New("room_type_not_found")
	ErrGuestNotFound        = errors.New("guest_not_found")
	ErrPaymentNotFound      = errors.New("payment_not_found")
	ErrGroupBookingNotFound = errors.New("group_booking_not_found")

	// conflict: caller must re-fetch current state and retry with corrected input
	ErrRoomUnavailable         = errors.New("room_unavailable")
	ErrRoomTypeMismatch        = errors.New("room_type_mismatch")
	ErrInvalidTransition       = errors.New("invalid_transition")
	ErrReservationNotConfirmed = errors.New("reservation_not_confirmed")
	ErrReservationNotCheckedIn = errors.New("reservation_not_checked_in")
	ErrAmountExceedsBalance    = errors.New("amount_exceeds_balance")
	ErrNoRoomsAvailable        = errors.New("no_rooms_available")

	// defect signal: the operation aborts and commits nothing
	ErrLedgerInconsistency = errors.New("ledger_inconsistency")
)

// IsValidation reports whether err is a bad-input rejection the caller can fix.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrInvalidDiscount) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrMissingPaymentMode)
}

// IsNotFound reports whether err means a referenced record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrReservationNotFound) ||
		errors.Is(err, ErrRoomNotFound) ||
		errors.Is(err, ErrRoomTypeNotFound) ||
		errors.Is(err, ErrGuestNotFound) ||
		errors.Is(err, ErrPaymentNotFound) ||
		errors.Is(err, ErrGroupBookingNotFound)
}

// IsConflict reports whether err means current state rejected the request; the
// caller should re-fetch and retry with corrected input.
func IsConflict(err error) bool {
	return errors.Is(err, ErrRoomUnavailable) ||
		errors.Is(err, ErrRoomTypeMismatch) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrReservationNotConfirmed) ||
		errors.Is(err, ErrReservationNotCheckedIn) ||
		errors.Is(err, ErrAmountExceedsBalance) ||
		errors.Is(err, ErrNoRoomsAvailable)
}
