package models

import (
	"gorm.io/gorm"
)

const (
	RoleUser       = "USER"
	RoleModerator  = "MODERATOR"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// RoleGrant records a role assignment. Authorization is data: every
// protected route checks grants at request time.
type RoleGrant struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	User      User   `json:"-" gorm:"foreignKey:UserID"`
	Role      string `json:"role" gorm:"type:varchar(32);not null"`
	GrantedBy uint   `json:"granted_by"`
	Notes     string `json:"notes"`
	IsDeleted bool   `json:"is_deleted" gorm:"default:false"`
}
