package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/models"
)

// reservationTransitions lists the allowed status moves. Anything not listed
// is rejected with ErrInvalidTransition.
var reservationTransitions = map[string][]string{
	models.ReservationUnconfirmed: {models.ReservationConfirmed, models.ReservationCancelled},
	models.ReservationConfirmed:   {models.ReservationCheckedIn, models.ReservationCancelled, models.ReservationNoShow},
	models.ReservationCheckedIn:   {models.ReservationCheckedOut},
}

func canTransition(from, to string) bool {
	for _, next := range reservationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ReservationService owns the reservation status lifecycle and the charge
// fields each transition may mutate. Every operation runs as one transaction:
// room status, reservation charges, bill, payment and activity log commit
// together or not at all.
type ReservationService struct {
	DB   *gorm.DB
	Auth Authorizer

	// Now is swappable for deterministic remaining-nights math in tests.
	Now func() time.Time
}

func NewReservationService(db *gorm.DB, auth Authorizer) *ReservationService {
	return &ReservationService{DB: db, Auth: auth, Now: time.Now}
}

type CreateReservationInput struct {
	GuestID    uint      `json:"guest_id"`
	RoomTypeID uint      `json:"room_type_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`

	Adults    int `json:"adults"`
	Children  int `json:"children"`
	ExtraBeds int `json:"extra_beds"`

	ServiceCharges float64 `json:"service_charges"`
	AdvanceAmount  float64 `json:"advance_amount"`
	AdvanceMode    string  `json:"advance_mode"`

	AccompanyingGuests []map[string]any `json:"accompanying_guests,omitempty"`
}

// Create books a new UNCONFIRMED reservation, deriving all charge fields from
// the room type's rates. When an advance is paid, the advance payment row and
// the initial bill are persisted in the same transaction as the reservation.
func (s *ReservationService) Create(actor string, in CreateReservationInput) (*models.Reservation, error) {
	if err := authorize(s.Auth, actor, "reservationManagement.create", "reservation"); err != nil {
		return nil, err
	}

	nights, err := Nights(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}
	if in.ServiceCharges < 0 || in.AdvanceAmount < 0 {
		return nil, ErrInvalidAmount
	}
	if in.AdvanceAmount > 0 && in.AdvanceMode == "" {
		return nil, ErrMissingPaymentMode
	}

	var reservationID uint
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var guest models.Guest
		if err := tx.First(&guest, in.GuestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGuestNotFound
			}
			return fmt.Errorf("failed to load guest %d: %w", in.GuestID, err)
		}

		var roomType models.RoomType
		if err := tx.First(&roomType, in.RoomTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomTypeNotFound
			}
			return fmt.Errorf("failed to load room type %d: %w", in.RoomTypeID, err)
		}

		roomCharges := RoomCharge(roomType.BasePrice, nights)
		extraBedCharges := ExtraBedCharge(in.ExtraBeds, roomType.ExtraBedCharge, nights)
		total := Cents(roomCharges + extraBedCharges + in.ServiceCharges)
		if in.AdvanceAmount > total {
			return ErrAmountExceedsBalance
		}
		pending := PendingBalance(total, in.AdvanceAmount, 0)

		adults := in.Adults
		if adults <= 0 {
			adults = 1
		}
		children := in.Children
		if children < 0 {
			children = 0
		}

		res := models.Reservation{
			ReferenceCode: uuid.NewString(),
			GuestID:       guest.ID,
			RoomTypeID:    roomType.ID,
			CheckInDate:   in.CheckIn,
			CheckOutDate:  in.CheckOut,
			Adults:        adults,
			Children:      children,
			ExtraBeds:     in.ExtraBeds,
			Status:        models.ReservationUnconfirmed,

			RoomCharges:     roomCharges,
			ExtraBedCharges: extraBedCharges,
			ServiceCharges:  Cents(in.ServiceCharges),
			TotalAmount:     total,
			AdvanceAmount:   Cents(in.AdvanceAmount),
			PendingAmount:   pending,
		}

		if len(in.AccompanyingGuests) > 0 {
			raw, mErr := json.Marshal(in.AccompanyingGuests)
			if mErr != nil {
				return fmt.Errorf("failed to encode accompanying guests: %w", mErr)
			}
			res.AccompanyingGuests = datatypes.JSON(raw)
		}

		if err := tx.Create(&res).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		reservationID = res.ID

		if in.AdvanceAmount > 0 {
			if _, err := createPayment(tx, &res, paymentDraft{
				Amount:    Cents(in.AdvanceAmount),
				Mode:      in.AdvanceMode,
				Notes:     "advance on booking",
				Actor:     actor,
				IsAdvance: true,
			}); err != nil {
				return err
			}
		}

		bill := models.Bill{
			ReservationID: res.ID,
			Status:        models.BillUnpaid,
			RoomCharges:   res.RoomCharges,
			TotalAmount:   res.TotalAmount,
			PendingAmount: res.PendingAmount,
		}
		if err := tx.Create(&bill).Error; err != nil {
			return fmt.Errorf("failed to create bill: %w", err)
		}

		if err := appendActivity(tx, res.ID, models.ActionCreated, actor,
			fmt.Sprintf("reservation %s created for %d night(s)", res.ReferenceCode, nights),
			map[string]any{"total": res.TotalAmount, "advance": res.AdvanceAmount}); err != nil {
			return err
		}

		return validateLedger(tx, &res)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(reservationID)
}

// Confirm moves UNCONFIRMED -> CONFIRMED by explicit staff action. Automatic
// confirmation on full payment lives in the payment processor.
func (s *ReservationService) Confirm(actor string, reservationID uint) (*models.Reservation, error) {
	if err := authorize(s.Auth, actor, "reservationManagement.confirm", "reservation"); err != nil {
		return nil, err
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		res, err := loadReservationForUpdate(tx, reservationID)
		if err != nil {
			return err
		}
		if !canTransition(res.Status, models.ReservationConfirmed) {
			return ErrInvalidTransition
		}
		if err := tx.Model(res).Update("status", models.ReservationConfirmed).Error; err != nil {
			return fmt.Errorf("failed to confirm reservation: %w", err)
		}
		return appendActivity(tx, res.ID, models.ActionConfirmed, actor, "reservation confirmed", nil)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(reservationID)
}

// CheckIn assigns a room and moves CONFIRMED -> CHECKED_IN. A zero roomID
// asks the engine to pick the lowest-numbered available room of the booked
// type, failing with ErrNoRoomsAvailable when none exists. The room is
// re-read under lock in the same transaction, so two concurrent check-ins
// against one room cannot both succeed.
func (s *ReservationService) CheckIn(actor string, reservationID, roomID uint) (*models.Reservation, error) {
	if err := authorize(s.Auth, actor, "reservationManagement.checkIn", "reservation"); err != nil {
		return nil, err
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		res, err := loadReservationForUpdate(tx, reservationID)
		if err != nil {
			return err
		}
		if res.Status != models.ReservationConfirmed {
			return ErrReservationNotConfirmed
		}

		targetRoomID := roomID
		if targetRoomID == 0 {
			picked, err := firstAvailableRoom(tx, res.RoomTypeID)
			if err != nil {
				return err
			}
			targetRoomID = picked.ID
		}

		room, err := assignRoom(tx, targetRoomID)
		if err != nil {
			return err
		}
		if room.RoomTypeID != res.RoomTypeID {
			return ErrRoomTypeMismatch
		}

		now := s.Now().UTC()
		if err := tx.Model(res).Updates(map[string]interface{}{
			"status":        models.ReservationCheckedIn,
			"room_id":       room.ID,
			"checked_in_at": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to check in reservation: %w", err)
		}
		res.Status = models.ReservationCheckedIn
		res.RoomID = &room.ID

		if err := appendActivity(tx, res.ID, models.ActionCheckedIn, actor,
			fmt.Sprintf("checked in to room %s", room.RoomNumber),
			map[string]any{"roomNumber": room.RoomNumber}); err != nil {
			return err
		}
		return validateLedger(tx, res)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(reservationID)
}

// ChangeRoom reassigns a CHECKED_IN reservation to a new room. The charge
// delta is the base-price difference over the remaining nights; a downgrade
// produces a negative delta (a credit). Release of the old room, assignment of
// the new one and the ledger update commit together: if the new room cannot be
// assigned, the old room stays OCCUPIED.
func (s *ReservationService) ChangeRoom(actor string, reservationID, newRoomID uint) (*models.Reservation, error) {
	if err := authorize(s.Auth, actor, "reservationManagement.changeRoom", "reservation"); err != nil {
		return nil, err
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		res, err := loadReservationForUpdate(tx, reservationID)
		if err != nil {
			return err
		}
		if res.Status != models.ReservationCheckedIn || res.RoomID == nil {
			return ErrReservationNotCheckedIn
		}

		var oldRoom models.Room
		if err := tx.Preload("RoomType").First(&oldRoom, *res.RoomID).Error; err != nil {
			return fmt.Errorf("failed to load current room %d: %w", *res.RoomID, err)
		}

		newRoom, err := assignRoom(tx, newRoomID)
		if err != nil {
			return err
		}
		var newType models.RoomType
		if err := tx.First(&newType, newRoom.RoomTypeID).Error; err != nil {
			return fmt.Errorf("failed to load room type %d: %w", newRoom.RoomTypeID, err)
		}

		if err := releaseRoom(tx, oldRoom.ID); err != nil {
			return err
		}

		remaining := RemainingNights(s.Now().UTC(), res.CheckOutDate)
		delta := Cents((newType.BasePrice - oldRoom.RoomType.BasePrice) * float64(remaining))

		res.RoomCharges = Cents(res.RoomCharges + delta)
		res.TotalAmount = Cents(res.TotalAmount + delta)
		res.PendingAmount = Cents(res.PendingAmount + delta)
		if res.PendingAmount < -centEpsilon {
			return fmt.Errorf("room change would overdraw balance: %w", ErrLedgerInconsistency)
		}

		if err := tx.Model(res).Updates(map[string]interface{}{
			"room_id":        newRoom.ID,
			"room_type_id":   newType.ID,
			"room_charges":   res.RoomCharges,
			"total_amount":   res.TotalAmount,
			"pending_amount": res.PendingAmount,
		}).Error; err != nil {
			return fmt.Errorf("failed to apply room change: %w", err)
		}
		res.RoomID = &newRoom.ID
		res.RoomTypeID = newType.ID

		if err := syncBill(tx, res); err != nil {
			return err
		}

		if err := appendActivity(tx, res.ID, models.ActionRoomChanged, actor,
			fmt.Sprintf("moved from room %s to room %s (charge delta %.2f)", oldRoom.RoomNumber, newRoom.RoomNumber, delta),
			map[string]any{
				"oldRoomNumber": oldRoom.RoomNumber,
				"newRoomNumber": newRoom.RoomNumber,
				"chargeDelta":   delta,
			}); err != nil {
			return err
		}
		return validateLedger(tx, res)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(reservationID)
}

// CheckOut settles and closes a CHECKED_IN reservation. A non-zero settlement
// is recorded as a payment in the same transaction; the room is released and
// the bill flips to PAID once nothing is pending.
func (s *ReservationService) CheckOut(actor string, reservationID uint, settlementAmount float64, mode string) (*models.Reservation, error) {
	if err := authorize(s.Auth, actor, "reservationManagement.checkOut", "reservation"); err != nil {
		return nil, err
	}
	if settlementAmount < 0 {
		return nil, ErrInvalidAmount
	}
	if settlementAmount > 0 && mode == "" {
		return nil, ErrMissingPaymentMode
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		res, err := loadReservationForUpdate(tx, reservationID)
		if err != nil {
			return err
		}
		if res.Status != models.ReservationCheckedIn {
			return ErrReservationNotCheckedIn
		}

		if settlementAmount > 0 {
			if Cents(settlementAmount) > res.PendingAmount+centEpsilon {
				return ErrAmountExceedsBalance
			}
			if _, err := createPayment(tx, res, paymentDraft{
				Amount: Cents(settlementAmount),
				Mode:   mode,
				Notes:  "settlement on check-out",
				Actor:  actor,
			}); err != nil {
				return err
			}
			res.PendingAmount = Cents(res.PendingAmount - settlementAmount)
		}

		if res.RoomID != nil {
			if err := releaseRoom(tx, *res.RoomID); err != nil {
				return err
			}
		}

		now := s.Now().UTC()
		if err := tx.Model(res).Updates(map[string]interface{}{
			"status":         models.ReservationCheckedOut,
			"checked_out_at": now,
			"pending_amount": res.PendingAmount,
		}).Error; err != nil {
			return fmt.Errorf("failed to check out reservation: %w", err)
		}
		res.Status = models.ReservationCheckedOut

		if err := syncBill(tx, res); err != nil {
			return err
		}

		if err := appendActivity(tx, res.ID, models.ActionCheckedOut, actor,
			fmt.Sprintf("checked out, settlement %.2f, balance %.2f", settlementAmount, res.PendingAmount),
			nil); err != nil {
			return err
		}
		return validateLedger(tx, res)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(reservationID)
}

// Cancel moves UNCONFIRMED or CONFIRMED to CANCELLED. No room is released
// (none is assigned in those states). Any cancellation penalty is supplied by
// the caller and recorded as a service charge; nothing is deducted
// automatically.
func (s *ReservationService) Cancel(actor string, reservationID uint, reason string, penalty float64) (*models.Reservation, error) {
	if err := authorize(s.Auth, actor, "reservationManagement.cancel", "reservation"); err != nil {
		return nil, err
	}
	return s.terminate(actor, reservationID, models.ReservationCancelled, models.ActionCancelled, reason, penalty)
}

// NoShow moves CONFIRMED to NO_SHOW. Retained-advance policy is the caller's
// concern; an explicit penalty may be passed like in Cancel.
func (s *ReservationService) NoShow(actor string, reservationID uint, reason string, penalty float64) (*models.Reservation, error) {
	if err := authorize(s.Auth, actor, "reservationManagement.noShow", "reservation"); err != nil {
		return nil, err
	}
	return s.terminate(actor, reservationID, models.ReservationNoShow, models.ActionNoShow, reason, penalty)
}

func (s *ReservationService) terminate(actor string, reservationID uint, target, action, reason string, penalty float64) (*models.Reservation, error) {
	if penalty < 0 {
		return nil, ErrInvalidAmount
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		res, err := loadReservationForUpdate(tx, reservationID)
		if err != nil {
			return err
		}
		if !canTransition(res.Status, target) {
			return ErrInvalidTransition
		}

		if penalty > 0 {
			res.ServiceCharges = Cents(res.ServiceCharges + penalty)
			res.TotalAmount = Cents(res.TotalAmount + penalty)
			res.PendingAmount = Cents(res.PendingAmount + penalty)
		}

		if err := tx.Model(res).Updates(map[string]interface{}{
			"status":          target,
			"service_charges": res.ServiceCharges,
			"total_amount":    res.TotalAmount,
			"pending_amount":  res.PendingAmount,
		}).Error; err != nil {
			return fmt.Errorf("failed to update reservation status: %w", err)
		}
		res.Status = target

		if err := syncBill(tx, res); err != nil {
			return err
		}

		desc := reason
		if desc == "" {
			desc = fmt.Sprintf("reservation marked %s", target)
		}
		if err := appendActivity(tx, res.ID, action, actor, desc,
			map[string]any{"penalty": penalty}); err != nil {
			return err
		}
		return validateLedger(tx, res)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(reservationID)
}

// GetByID returns the reservation with its room, rates, bills, payments and
// activity trail preloaded.
func (s *ReservationService) GetByID(reservationID uint) (*models.Reservation, error) {
	var res models.Reservation
	err := s.DB.
		Preload("Guest").
		Preload("RoomType").
		Preload("Room").
		Preload("Payments").
		Preload("Bills").
		Preload("ActivityLogs").
		First(&res, reservationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to load reservation %d: %w", reservationID, err)
	}
	return &res, nil
}

// List returns reservations newest first, optionally filtered by status.
func (s *ReservationService) List(status string) ([]models.Reservation, error) {
	q := s.DB.
		Preload("Guest").
		Preload("RoomType").
		Preload("Room").
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []models.Reservation
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return list, nil
}

// loadReservationForUpdate re-reads the reservation under lock so charge and
// status decisions are never made against a stale row.
func loadReservationForUpdate(tx *gorm.DB, reservationID uint) (*models.Reservation, error) {
	var res models.Reservation
	if err := lockForUpdate(tx).First(&res, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to load reservation %d: %w", reservationID, err)
	}
	return &res, nil
}

// syncBill keeps the open bill's money mirrors equal to the reservation's, and
// flips it PAID exactly when nothing is pending.
func syncBill(tx *gorm.DB, res *models.Reservation) error {
	status := models.BillUnpaid
	if math.Abs(res.PendingAmount) <= centEpsilon {
		status = models.BillPaid
	}
	err := tx.Model(&models.Bill{}).
		Where("reservation_id = ?", res.ID).
		Updates(map[string]interface{}{
			"room_charges":   res.RoomCharges,
			"total_amount":   res.TotalAmount,
			"pending_amount": res.PendingAmount,
			"status":         status,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to sync bill: %w", err)
	}
	return nil
}

// validateLedger re-derives both money invariants from the rows inside the
// transaction and aborts the operation instead of committing a drifted or
// negative balance.
func validateLedger(tx *gorm.DB, res *models.Reservation) error {
	want := Cents(res.RoomCharges + res.ExtraBedCharges + res.ServiceCharges)
	if math.Abs(res.TotalAmount-want) > centEpsilon {
		return fmt.Errorf("total %.2f != charges sum %.2f: %w", res.TotalAmount, want, ErrLedgerInconsistency)
	}

	var paid float64
	err := tx.Model(&models.Payment{}).
		Where("reservation_id = ? AND is_advance = ? AND status IN ?",
			res.ID, false,
			[]string{models.PaymentCompleted, models.PaymentPartiallyRefunded, models.PaymentRefunded}).
		Select("COALESCE(SUM(amount - refund_amount), 0)").
		Scan(&paid).Error
	if err != nil {
		return fmt.Errorf("failed to sum payments: %w", err)
	}

	pending := PendingBalance(res.TotalAmount, res.AdvanceAmount, paid)
	if math.Abs(res.PendingAmount-pending) > centEpsilon {
		return fmt.Errorf("pending %.2f != derived %.2f: %w", res.PendingAmount, pending, ErrLedgerInconsistency)
	}
	if res.PendingAmount < -centEpsilon {
		return fmt.Errorf("negative pending balance %.2f: %w", res.PendingAmount, ErrLedgerInconsistency)
	}
	return nil
}
