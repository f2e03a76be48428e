package services_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/models"
	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/services"
)

func TestRecordPayment_FullBalanceConfirms(t *testing.T) {
	// Scenario B: paying the full pending amount confirms the reservation.
	env := newTestEnv(t)
	standard := seedRoomType(t, env.db, "Standard", 50, 10)
	res := bookStay(t, env, standard.ID, 0, "")

	result, err := env.payments.RecordPayment("manager", res.ID, services.RecordPaymentInput{
		Amount: 100,
		Mode:   models.ModeCash,
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentCompleted, result.Payment.Status)
	assert.InDelta(t, 100, result.Payment.Amount, 0.001)
	assert.True(t, strings.HasPrefix(result.Payment.ReceiptNumber, "RCP-"))
	assert.Len(t, result.Payment.ReceiptNumber, len("RCP-")+8)
	assert.Equal(t, "manager", result.Payment.RecordedBy)

	assert.InDelta(t, 0, result.Reservation.PendingAmount, 0.001)
	assert.Equal(t, models.ReservationConfirmed, result.Reservation.Status)

	// bill mirrors flip to PAID at zero pending
	var bill models.Bill
	require.NoError(t, env.db.Where("reservation_id = ?", res.ID).First(&bill).Error)
	assert.Equal(t, models.BillPaid, bill.Status)
	assert.InDelta(t, 0, bill.PendingAmount, 0.001)

	var logs []models.ActivityLog
	require.NoError(t, env.db.Where("reservation_id = ? AND action = ?", res.ID, models.ActionPayment).Find(&logs).Error)
	assert.Len(t, logs, 1)
}

func TestRecordPayment_PartialKeepsUnconfirmed(t *testing.T) {
	env := newTestEnv(t)
	standard := seedRoomType(t, env.db, "Standard", 50, 10)
	res := bookStay(t, env, standard.ID, 0, "")

	result, err := env.payments.RecordPayment("manager", res.ID, services.RecordPaymentInput{
		Amount: 40,
		Mode:   models.ModeCard,
	})
	require.NoError(t, err)
	assert.InDelta(t, 60, result.Reservation.PendingAmount, 0.001)
	assert.Equal(t, models.ReservationUnconfirmed, result.Reservation.Status)
}

func TestRecordPayment_ExceedsBalanceRejected(t *testing.T) {
	// Scenario C: amount above pending fails, no payment row, balance unchanged.
	env := newTestEnv(t)
	standard := seedRoomType(t, env.db, "Standard", 50, 10)
	res := bookStay(t, env, standard.ID, 0, "")

	_, err := env.payments.RecordPayment("manager", res.ID, services.RecordPaymentInput{
		Amount: 150,
		Mode:   models.ModeCash,
	})
	require.ErrorIs(t, err, services.ErrAmountExceedsBalance)

	var count int64
	env.db.Model(&models.Payment{}).Where("reservation_id = ?", res.ID).Count(&count)
	assert.Zero(t, count)

	got, err := env.reservations.GetByID(res.ID)
	require.NoError(t, err)
	assert.InDelta(t, 100, got.PendingAmount, 0.001)
}

func TestRecordPayment_SecondOverdrawRejected(t *testing.T) {
	// Two payments that are individually valid against the original balance
	// cannot jointly overdraw it: the second sees the reduced balance.
	env := newTestEnv(t)
	standard := seedRoomType(t, env.db, "Standard", 50, 10)
	res := bookStay(t, env, standard.ID, 0, "")

	_, err := env.payments.RecordPayment("manager", res.ID, services.RecordPaymentInput{
		Amount: 60,
		Mode:   models.ModeCash,
	})
	require.NoError(t, err)

	_, err = env.payments.RecordPayment("manager", res.ID, services.RecordPaymentInput{
		Amount: 60,
		Mode:   models.ModeCash,
	})
	require.ErrorIs(t, err, services.ErrAmountExceedsBalance)

	got, err := env.reservations.GetByID(res.ID)
	require.NoError(t, err)
	assert.InDelta(t, 40, got.PendingAmount, 0.001)
}

func TestRecordPayment_Validation(t *testing.T) {
	env := newTestEnv(t)
	standard := seedRoomType(t, env.db, "Standard", 50, 10)
	res := bookStay(t, env, standard.ID, 0, "")

	_, err := env.payments.RecordPayment("manager", res.ID, services.RecordPaymentInput{Amount: 0, Mode: models.ModeCash})
	require.ErrorIs(t, err, services.ErrInvalidAmount)

	_, err = env.payments.RecordPayment("manager", res.ID, services.RecordPaymentInput{Amount: -5, Mode: models.ModeCash})
	require.ErrorIs(t, err, services.ErrInvalidAmount)

	_, err = env.payments.RecordPayment("manager", res.ID, services.RecordPaymentInput{Amount: 50})
	require.ErrorIs(t, err, services.ErrMissingPaymentMode)

	_, err = env.payments.RecordPayment("manager", 9999, services.RecordPaymentInput{Amount: 50, Mode: models.ModeCash})
	require.ErrorIs(t, err, services.ErrReservationNotFound)
}

func TestRecordPayment_Unauthorized(t *testing.T) {
	env := newTestEnv(t)
	standard := seedRoomType(t, env.db, "Standard", 50, 10)
	res := bookStay(t, env, standard.ID, 0, "")

	denied := services.NewPaymentService(env.db, denyAll{})
	_, err := denied.RecordPayment("intruder", res.ID, services.RecordPaymentInput{Amount: 50, Mode: models.ModeCash})
	require.ErrorIs(t, err, services.ErrUnauthorized)
}

// =============================================================================
// REFUNDS
// =============================================================================

func TestRefund_PartialThenFull(t *testing.T) {
	env := newTestEnv(t)
	standard := seedRoomType(t, env.db, "Standard", 50, 10)
	res := bookStay(t, env, standard.ID, 0, "")

	paid, err := env.payments.RecordPayment("manager", res.ID, services.RecordPaymentInput{
		Amount: 100,
		Mode:   models.ModeCash,
	})
	require.NoError(t, err)

	partial, err := env.payments.Refund("manager", paid.Payment.ID, services.RefundInput{Amount: 40, Reason: "rate adjustment"})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPartiallyRefunded, partial.Payment.Status)
	assert.InDelta(t, 40, partial.Payment.RefundAmount, 0.001)
	assert.NotNil(t, partial.Payment.RefundedAt)
	assert.InDelta(t, 40, partial.Reservation.PendingAmount, 0.001)

	full, err := env.payments.Refund("manager", paid.Payment.ID, services.RefundInput{Amount: 60})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentRefunded, full.Payment.Status)
	assert.InDelta(t, 100, full.Payment.RefundAmount, 0.001)
	assert.InDelta(t, 100, full.Reservation.PendingAmount, 0.001)
}

func TestRefund_CannotExceedRemainder(t *testing.T) {
	env := newTestEnv(t)
	standard := seedRoomType(t, env.db, "Standard", 50, 10)
	res := bookStay(t, env, standard.ID, 0, "")

	paid, err := env.payments.RecordPayment("manager", res.ID, services.RecordPaymentInput{
		Amount: 50,
		Mode:   models.ModeCash,
	})
	require.NoError(t, err)

	_, err = env.payments.Refund("manager", paid.Payment.ID, services.RefundInput{Amount: 80})
	require.ErrorIs(t, err, services.ErrAmountExceedsBalance)
}

func TestRefund_AdvancePaymentShrinksAdvance(t *testing.T) {
	env := newTestEnv(t)
	standard := seedRoomType(t, env.db, "Standard", 50, 10)
	res := bookStay(t, env, standard.ID, 30, models.ModeCash)

	require.Len(t, res.Payments, 1)
	advancePayment := res.Payments[0]

	refunded, err := env.payments.Refund("manager", advancePayment.ID, services.RefundInput{Amount: 30})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentRefunded, refunded.Payment.Status)
	assert.InDelta(t, 0, refunded.Reservation.AdvanceAmount, 0.001)
	assert.InDelta(t, 100, refunded.Reservation.PendingAmount, 0.001)
}

// =============================================================================
// PROJECTIONS
// =============================================================================

func TestListPayments(t *testing.T) {
	env := newTestEnv(t)
	standard := seedRoomType(t, env.db, "Standard", 50, 10)
	res := bookStay(t, env, standard.ID, 0, "")

	_, err := env.payments.RecordPayment("manager", res.ID, services.RecordPaymentInput{Amount: 30, Mode: models.ModeCash})
	require.NoError(t, err)
	paid, err := env.payments.RecordPayment("manager", res.ID, services.RecordPaymentInput{Amount: 70, Mode: models.ModeCard})
	require.NoError(t, err)
	_, err = env.payments.Refund("manager", paid.Payment.ID, services.RefundInput{Amount: 70})
	require.NoError(t, err)

	byReservation, err := env.payments.ListByReservation(res.ID)
	require.NoError(t, err)
	assert.Len(t, byReservation, 2)

	completed, err := env.payments.ListByStatus(models.PaymentCompleted)
	require.NoError(t, err)
	assert.Len(t, completed, 1)

	refunded, err := env.payments.ListByStatus(models.PaymentRefunded)
	require.NoError(t, err)
	assert.Len(t, refunded, 1)
}
