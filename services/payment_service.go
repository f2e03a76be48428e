package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/models"
	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/utils"
)

// PaymentService applies payments against a reservation's outstanding balance
// and keeps bill and reservation pending-amount synchronized. Payments are
// recorded, not processed through a card network.
type PaymentService struct {
	DB   *gorm.DB
	Auth Authorizer
}

func NewPaymentService(db *gorm.DB, auth Authorizer) *PaymentService {
	return &PaymentService{DB: db, Auth: auth}
}

type RecordPaymentInput struct {
	Amount         float64 `json:"amount"`
	Mode           string  `json:"mode"`
	TransactionRef string  `json:"transaction_ref,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

// PaymentResult is the created/updated payment plus a denormalized view of the
// owning reservation and guest for receipt display.
type PaymentResult struct {
	Payment     models.Payment     `json:"payment"`
	Reservation models.Reservation `json:"reservation"`
}

// RecordPayment validates the amount against the balance re-read inside the
// transaction, creates a COMPLETED payment with a generated receipt number and
// decrements the pending amount, promoting UNCONFIRMED -> CONFIRMED when the
// balance reaches zero. Partial application is never observable.
func (s *PaymentService) RecordPayment(actor string, reservationID uint, in RecordPaymentInput) (*PaymentResult, error) {
	if err := authorize(s.Auth, actor, "paymentManagement.record", "payment"); err != nil {
		return nil, err
	}
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if strings.TrimSpace(in.Mode) == "" {
		return nil, ErrMissingPaymentMode
	}

	var paymentID uint
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		res, err := loadReservationForUpdate(tx, reservationID)
		if err != nil {
			return err
		}

		amount := Cents(in.Amount)
		if amount > res.PendingAmount+centEpsilon {
			return ErrAmountExceedsBalance
		}

		payment, err := createPayment(tx, res, paymentDraft{
			Amount:         amount,
			Mode:           in.Mode,
			TransactionRef: in.TransactionRef,
			Notes:          in.Notes,
			Actor:          actor,
		})
		if err != nil {
			return err
		}
		paymentID = payment.ID

		res.PendingAmount = Cents(res.PendingAmount - amount)
		updates := map[string]interface{}{"pending_amount": res.PendingAmount}
		if math.Abs(res.PendingAmount) <= centEpsilon && res.Status == models.ReservationUnconfirmed {
			res.PendingAmount = 0
			updates["pending_amount"] = 0.0
			updates["status"] = models.ReservationConfirmed
			res.Status = models.ReservationConfirmed
		}
		if err := tx.Model(res).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to apply payment to balance: %w", err)
		}

		if err := syncBill(tx, res); err != nil {
			return err
		}

		if err := appendActivity(tx, res.ID, models.ActionPayment, actor,
			fmt.Sprintf("payment %.2f received via %s (receipt %s)", amount, in.Mode, payment.ReceiptNumber),
			map[string]any{"amount": amount, "mode": in.Mode, "receipt": payment.ReceiptNumber}); err != nil {
			return err
		}
		return validateLedger(tx, res)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.result(paymentID)
}

type RefundInput struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason,omitempty"`
}

// Refund reverses part or all of a completed payment and restores the same
// portion of the reservation's pending amount. A full refund sets the payment
// REFUNDED, a partial one PARTIALLY_REFUNDED.
func (s *PaymentService) Refund(actor string, paymentID uint, in RefundInput) (*PaymentResult, error) {
	if err := authorize(s.Auth, actor, "paymentManagement.refund", "payment"); err != nil {
		return nil, err
	}
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := lockForUpdate(tx).First(&payment, paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return fmt.Errorf("failed to load payment %d: %w", paymentID, err)
		}
		if payment.Status != models.PaymentCompleted && payment.Status != models.PaymentPartiallyRefunded {
			return ErrInvalidTransition
		}

		amount := Cents(in.Amount)
		refundable := Cents(payment.Amount - payment.RefundAmount)
		if amount > refundable+centEpsilon {
			return ErrAmountExceedsBalance
		}

		res, err := loadReservationForUpdate(tx, payment.ReservationID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		payment.RefundAmount = Cents(payment.RefundAmount + amount)
		if math.Abs(payment.RefundAmount-payment.Amount) <= centEpsilon {
			payment.Status = models.PaymentRefunded
		} else {
			payment.Status = models.PaymentPartiallyRefunded
		}
		if err := tx.Model(&payment).Updates(map[string]interface{}{
			"refund_amount": payment.RefundAmount,
			"refunded_at":   now,
			"status":        payment.Status,
		}).Error; err != nil {
			return fmt.Errorf("failed to record refund: %w", err)
		}

		// Refunded money is owed again. Advance refunds shrink the advance
		// instead of the completed-payments sum.
		res.PendingAmount = Cents(res.PendingAmount + amount)
		updates := map[string]interface{}{"pending_amount": res.PendingAmount}
		if payment.IsAdvance {
			res.AdvanceAmount = Cents(res.AdvanceAmount - amount)
			updates["advance_amount"] = res.AdvanceAmount
		}
		if err := tx.Model(res).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to restore balance after refund: %w", err)
		}

		if err := syncBill(tx, res); err != nil {
			return err
		}

		desc := fmt.Sprintf("refund %.2f on receipt %s", amount, payment.ReceiptNumber)
		if in.Reason != "" {
			desc += ": " + in.Reason
		}
		if err := appendActivity(tx, res.ID, models.ActionRefund, actor, desc,
			map[string]any{"amount": amount, "receipt": payment.ReceiptNumber}); err != nil {
			return err
		}
		return validateLedger(tx, res)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.result(paymentID)
}

// ListByReservation is a pure projection of a reservation's payments, oldest
// first.
func (s *PaymentService) ListByReservation(reservationID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.DB.
		Where("reservation_id = ?", reservationID).
		Order("id ASC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// ListByStatus lists payments across reservations filtered by status.
func (s *PaymentService) ListByStatus(status string) ([]models.Payment, error) {
	q := s.DB.Order("id ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var payments []models.Payment
	if err := q.Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (s *PaymentService) result(paymentID uint) (*PaymentResult, error) {
	var payment models.Payment
	if err := s.DB.First(&payment, paymentID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload payment %d: %w", paymentID, err)
	}
	var res models.Reservation
	if err := s.DB.Preload("Guest").Preload("RoomType").First(&res, payment.ReservationID).Error; err != nil {
		return nil, fmt.Errorf("failed to load reservation %d: %w", payment.ReservationID, err)
	}
	return &PaymentResult{Payment: payment, Reservation: res}, nil
}

// paymentDraft carries the fields of a payment about to be written inside an
// open transaction.
type paymentDraft struct {
	Amount         float64
	Mode           string
	TransactionRef string
	Notes          string
	Actor          string
	IsAdvance      bool
}

// createPayment writes a COMPLETED payment row with a generated receipt
// number, retrying on unique-index collisions.
func createPayment(tx *gorm.DB, res *models.Reservation, draft paymentDraft) (*models.Payment, error) {
	if draft.Mode == "" {
		return nil, ErrMissingPaymentMode
	}

	now := time.Now().UTC()
	var payment models.Payment
	var createErr error
	for attempt := 0; attempt < 5; attempt++ {
		receipt, err := utils.GenerateReceiptNumber()
		if err != nil {
			return nil, fmt.Errorf("failed to generate receipt number: %w", err)
		}

		payment = models.Payment{
			ReservationID:  res.ID,
			Amount:         draft.Amount,
			Mode:           draft.Mode,
			Status:         models.PaymentCompleted,
			IsAdvance:      draft.IsAdvance,
			ReceiptNumber:  receipt,
			TransactionRef: draft.TransactionRef,
			Notes:          draft.Notes,
			RecordedBy:     draft.Actor,
			PaidAt:         &now,
		}
		createErr = tx.Create(&payment).Error
		if createErr == nil {
			return &payment, nil
		}

		lc := strings.ToLower(createErr.Error())
		if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") || strings.Contains(lc, "constraint") {
			continue
		}
		break
	}
	return nil, fmt.Errorf("failed to create payment: %w", createErr)
}
