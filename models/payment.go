package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PaymentPending           = "PENDING"
	PaymentCompleted         = "COMPLETED"
	PaymentFailed            = "FAILED"
	PaymentRefunded          = "REFUNDED"
	PaymentPartiallyRefunded = "PARTIALLY_REFUNDED"
	PaymentCancelled         = "CANCELLED"
)

// Payment modes accepted by the front desk. Payments are recorded here, not
// processed through a card network.
const (
	ModeCash         = "CASH"
	ModeCard         = "CARD"
	ModeBankTransfer = "BANK_TRANSFER"
	ModeOnline       = "ONLINE"
)

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReservationID uint `gorm:"index;not null;column:reservation_id" json:"reservation_id"`

	Amount float64 `gorm:"type:decimal(10,2)" json:"amount"`
	Mode   string  `gorm:"size:50" json:"mode"`
	Status string  `gorm:"size:50;index" json:"status"`

	// IsAdvance marks the payment created for a reservation's advance amount.
	// Advance money is tracked on the reservation itself, so these rows are
	// excluded from the completed-payments sum of the pending-balance formula.
	IsAdvance bool `gorm:"column:is_advance;default:false" json:"is_advance"`

	ReceiptNumber  string `gorm:"column:receipt_number;size:64;uniqueIndex" json:"receipt_number"`
	TransactionRef string `gorm:"column:transaction_ref;size:200" json:"transaction_ref,omitempty"`
	Notes          string `gorm:"size:500" json:"notes,omitempty"`
	RecordedBy     string `gorm:"column:recorded_by;size:150" json:"recorded_by"`

	RefundAmount float64    `gorm:"column:refund_amount;type:decimal(10,2)" json:"refund_amount"`
	RefundedAt   *time.Time `gorm:"column:refunded_at" json:"refunded_at,omitempty"`
	PaidAt       *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
