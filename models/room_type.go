package models

import (
	"time"

	"gorm.io/gorm"
)

type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;uniqueIndex" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	// Nightly rates. ExtraBedCharge is per bed per night.
	BasePrice      float64 `gorm:"column:base_price" json:"basePrice"`
	ExtraBedCharge float64 `gorm:"column:extra_bed_charge" json:"extraBedCharge"`

	AdultCapacity int `gorm:"column:adult_capacity;default:2" json:"adultCapacity"`
	ChildCapacity int `gorm:"column:child_capacity;default:1" json:"childCapacity"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
