package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage    string    `json:"profile_image" gorm:"default:''"`
	Name            string    `json:"name" gorm:"default:''"`
	Email           string    `json:"email" gorm:"unique;not null"`
	Phone           string    `json:"phone" gorm:"default:''"`
	Role            string    `json:"role" gorm:"default:'USER'"` // USER, ADMIN, SUPER_ADMIN
	Password        string    `json:"-" gorm:"not null"`
	IsEmailVerified bool      `json:"is_email_verified" gorm:"default:false"`
	LastLogin       time.Time `json:"last_login" gorm:"default:NULL"`
	IsDeleted       bool      `json:"is_deleted" gorm:"default:false"`
}
