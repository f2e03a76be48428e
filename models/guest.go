package models

import (
	"time"

	"gorm.io/gorm"
)

// Guest is the directory record a reservation points at. Guest management
// screens live outside this service; the row exists for FK integrity and for
// denormalized payment/reservation views.
type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	FullName    string `gorm:"size:255" json:"fullName"`
	Email       string `gorm:"size:255;index" json:"email"`
	Phone       string `gorm:"size:50" json:"phone"`
	Nationality string `gorm:"size:100" json:"nationality"`

	IDType   string `gorm:"size:50" json:"idType"`
	IDNumber string `gorm:"size:100" json:"idNumber"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
