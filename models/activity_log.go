package models

import (
	"time"

	"gorm.io/datatypes"
)

// Activity action tags.
const (
	ActionCreated      = "RESERVATION_CREATED"
	ActionConfirmed    = "RESERVATION_CONFIRMED"
	ActionCheckedIn    = "CHECKED_IN"
	ActionRoomChanged  = "ROOM_CHANGED"
	ActionCheckedOut   = "CHECKED_OUT"
	ActionCancelled    = "CANCELLED"
	ActionNoShow       = "NO_SHOW"
	ActionPayment      = "PAYMENT_RECORDED"
	ActionRefund       = "PAYMENT_REFUNDED"
)

// ActivityLog is append-only. Rows are created inside the same transaction as
// the mutation they describe and are never updated or deleted.
type ActivityLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReservationID uint   `gorm:"index;not null;column:reservation_id" json:"reservation_id"`
	Action        string `gorm:"size:64;index" json:"action"`
	Description   string `gorm:"size:500" json:"description"`
	Actor         string `gorm:"size:150" json:"actor"`

	Metadata datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
