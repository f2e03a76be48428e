package models

import (
	"time"

	"gorm.io/gorm"
)

// Staff is the actor directory backing the permission check. Authentication
// itself is handled outside this service; the password hash is seeded for the
// surrounding login system and never returned in JSON.
type Staff struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"size:255" json:"full_name"`
	Username string `gorm:"uniqueIndex;size:150" json:"username"`
	Password string `gorm:"size:255" json:"-"`
	RoleID   uint   `gorm:"index" json:"role_id"`

	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Role struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Name        string           `gorm:"size:100;uniqueIndex" json:"name"`
	Description string           `gorm:"size:255" json:"description"`
	Permissions []RolePermission `gorm:"foreignKey:RoleID" json:"permissions"`
	CreatedAt   time.Time        `json:"created_at"`
}

type RolePermission struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	RoleID     uint   `gorm:"not null;index:idx_role_permission,unique" json:"role_id"`
	Permission string `gorm:"size:150;not null;index:idx_role_permission,unique" json:"permission"`
}
