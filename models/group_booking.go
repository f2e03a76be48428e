package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	GroupBookingActive    = "ACTIVE"
	GroupBookingCancelled = "CANCELLED"
	GroupBookingCompleted = "COMPLETED"
)

// GroupBooking aggregates multiple reservations under one organizational
// contract. Created atomically with all of its children; the discount is
// applied once, at creation time, to each child's charge fields.
type GroupBooking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`

	Name          string `gorm:"size:255" json:"name"`
	ContactPerson string `gorm:"column:contact_person;size:255" json:"contact_person"`
	ContactEmail  string `gorm:"column:contact_email;size:255" json:"contact_email"`
	ContactPhone  string `gorm:"column:contact_phone;size:50" json:"contact_phone"`

	StartDate time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate   time.Time `gorm:"column:end_date" json:"end_date"`

	TotalRooms int    `gorm:"column:total_rooms" json:"total_rooms"`
	Status     string `gorm:"size:32;default:'ACTIVE'" json:"status"`

	SpecialRates       bool     `gorm:"column:special_rates;default:false" json:"special_rates"`
	DiscountPercentage *float64 `gorm:"column:discount_percentage" json:"discount_percentage,omitempty"`

	Reservations []Reservation `gorm:"foreignKey:GroupBookingID" json:"reservations"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
