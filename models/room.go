package models

import (
	"gorm.io/gorm"
)

// Room status values. Only the room assignment service flips a room between
// AVAILABLE and OCCUPIED; MAINTENANCE and CLEANING come from housekeeping setup.
const (
	RoomAvailable   = "AVAILABLE"
	RoomOccupied    = "OCCUPIED"
	RoomMaintenance = "MAINTENANCE"
	RoomCleaning    = "CLEANING"
)

type Room struct {
	gorm.Model

	RoomTypeID uint   `json:"roomTypeId" gorm:"column:room_type_id;index"`
	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	Floor      string `json:"floor" gorm:"type:varchar(10)"`

	Status string `json:"status" gorm:"size:32;default:'AVAILABLE'"`
	Active bool   `json:"active" gorm:"default:true"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
}
