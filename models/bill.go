package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BillUnpaid = "UNPAID"
	BillPaid   = "PAID"
)

// Bill is the folio view of a reservation's charges. Its money mirrors are
// updated in the same transaction as any reservation charge mutation.
type Bill struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReservationID uint   `gorm:"index;column:reservation_id" json:"reservation_id"`
	Status        string `gorm:"size:32;default:'UNPAID'" json:"status"`

	RoomCharges   float64 `gorm:"column:room_charges" json:"room_charges"`
	TotalAmount   float64 `gorm:"column:total_amount" json:"total_amount"`
	PendingAmount float64 `gorm:"column:pending_amount" json:"pending_amount"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
