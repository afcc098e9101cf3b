package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PermCanManageProducts = "canManageProducts"
	PermCanSeeOtherUsers  = "canSeeOtherUsers"
	PermCanManageUsers    = "canManageUsers"
	PermCanManageRoles    = "canManageRoles"
	PermCanManageCart     = "canManageCart"
	PermCanManageOrders   = "canManageOrders"
)

// PermissionsList drives the generated permission table in internal/access
// and the role fields loaded onto the session.
var PermissionsList = []string{
	PermCanManageProducts,
	PermCanSeeOtherUsers,
	PermCanManageUsers,
	PermCanManageRoles,
	PermCanManageCart,
	PermCanManageOrders,
}

type Role struct {
	ID                string `gorm:"primaryKey" json:"id"`
	Name              string `gorm:"uniqueIndex;not null" json:"name"`
	CanManageProducts bool   `json:"canManageProducts"`
	CanSeeOtherUsers  bool   `json:"canSeeOtherUsers"`
	CanManageUsers    bool   `json:"canManageUsers"`
	CanManageRoles    bool   `json:"canManageRoles"`
	CanManageCart     bool   `json:"canManageCart"`
	CanManageOrders   bool   `json:"canManageOrders"`
}

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Has reports whether the role carries the named permission flag.
// A nil role has no permissions.
func (r *Role) Has(permission string) bool {
	if r == nil {
		return false
	}
	switch permission {
	case PermCanManageProducts:
		return r.CanManageProducts
	case PermCanSeeOtherUsers:
		return r.CanSeeOtherUsers
	case PermCanManageUsers:
		return r.CanManageUsers
	case PermCanManageRoles:
		return r.CanManageRoles
	case PermCanManageCart:
		return r.CanManageCart
	case PermCanManageOrders:
		return r.CanManageOrders
	}
	return false
}
