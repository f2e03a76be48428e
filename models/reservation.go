package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Reservation status values. Allowed transitions are owned by
// services.ReservationService; nothing else writes Status.
const (
	ReservationUnconfirmed = "UNCONFIRMED"
	ReservationConfirmed   = "CONFIRMED"
	ReservationCheckedIn   = "CHECKED_IN"
	ReservationCheckedOut  = "CHECKED_OUT"
	ReservationCancelled   = "CANCELLED"
	ReservationNoShow      = "NO_SHOW"
)

// Reservation is the central ledger-bearing entity. Invariants held after any
// committed operation:
//
//	TotalAmount   = RoomCharges + ExtraBedCharges + ServiceCharges
//	PendingAmount = TotalAmount - AdvanceAmount - sum(completed payments)
type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`

	GuestID    uint  `gorm:"index;column:guest_id" json:"guest_id"`
	RoomTypeID uint  `gorm:"index;column:room_type_id" json:"room_type_id"`
	RoomID     *uint `gorm:"column:room_id;index" json:"room_id,omitempty"`

	CheckInDate  time.Time `gorm:"column:check_in_date" json:"check_in_date"`
	CheckOutDate time.Time `gorm:"column:check_out_date" json:"check_out_date"`

	Adults    int `gorm:"column:adults;default:1" json:"adults"`
	Children  int `gorm:"column:children;default:0" json:"children"`
	ExtraBeds int `gorm:"column:extra_beds;default:0" json:"extra_beds"`

	Status string `gorm:"column:status;size:32;index" json:"status"`

	RoomCharges     float64 `gorm:"column:room_charges" json:"room_charges"`
	ExtraBedCharges float64 `gorm:"column:extra_bed_charges" json:"extra_bed_charges"`
	ServiceCharges  float64 `gorm:"column:service_charges" json:"service_charges"`
	TotalAmount     float64 `gorm:"column:total_amount" json:"total_amount"`
	AdvanceAmount   float64 `gorm:"column:advance_amount" json:"advance_amount"`
	PendingAmount   float64 `gorm:"column:pending_amount" json:"pending_amount"`

	GroupBookingID *uint `gorm:"column:group_booking_id;index" json:"group_booking_id,omitempty"`

	CheckedInAt  *time.Time `gorm:"column:checked_in_at" json:"checked_in_at,omitempty"`
	CheckedOutAt *time.Time `gorm:"column:checked_out_at" json:"checked_out_at,omitempty"`

	// Draft list of accompanying guests captured at booking time, free-form.
	AccompanyingGuests datatypes.JSON `gorm:"column:accompanying_guests" json:"accompanyingGuests,omitempty"`

	Guest        Guest         `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	RoomType     RoomType      `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
	Room         *Room         `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Payments     []Payment     `gorm:"foreignKey:ReservationID" json:"payments"`
	Bills        []Bill        `gorm:"foreignKey:ReservationID" json:"bills"`
	ActivityLogs []ActivityLog `gorm:"foreignKey:ReservationID" json:"activityLogs"`
}

// Terminal reports whether no further transition may leave the status.
func (r *Reservation) Terminal() bool {
	switch r.Status {
	case ReservationCheckedOut, ReservationCancelled, ReservationNoShow:
		return true
	}
	return false
}
