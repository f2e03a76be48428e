package services

import (
	"gorm.io/gorm"

	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/models"
)

// Authorizer is the external identity/permission check every public operation
// consults before touching any record. Authentication lives outside this
// service; only the allow/deny decision crosses the boundary.
type Authorizer interface {
	Allowed(actorID, action, resource string) bool
}

// authorize returns ErrUnauthorized when the actor is empty or denied.
func authorize(a Authorizer, actorID, action, resource string) error {
	if actorID == "" || a == nil || !a.Allowed(actorID, action, resource) {
		return ErrUnauthorized
	}
	return nil
}

// PermissionAuthorizer resolves an actor's staff row to its role and checks
// the role's permission list for the requested action.
type PermissionAuthorizer struct {
	DB *gorm.DB
}

func NewPermissionAuthorizer(db *gorm.DB) *PermissionAuthorizer {
	return &PermissionAuthorizer{DB: db}
}

func (a *PermissionAuthorizer) Allowed(actorID, action, _ string) bool {
	var staff models.Staff
	if err := a.DB.Where("username = ?", actorID).First(&staff).Error; err != nil {
		return false
	}

	var count int64
	a.DB.Model(&models.RolePermission{}).
		Where("role_id = ? AND permission = ?", staff.RoleID, action).
		Count(&count)
	return count > 0
}
