package models

import "gorm.io/gorm"

// Post is a community feed entry
type Post struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	Title     string `json:"title"`
	Body      string `json:"body" gorm:"not null"`
	Category  string `json:"category" gorm:"default:'GENERAL'"` // GENERAL, HEALTH, EDUCATION
	IsDeleted bool   `json:"is_deleted" gorm:"default:false"`
}

type Comment struct {
	gorm.Model
	PostID    uint   `json:"post_id" gorm:"index;not null"`
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	Body      string `json:"body" gorm:"not null"`
	IsDeleted bool   `json:"is_deleted" gorm:"default:false"`
}

type Like struct {
	gorm.Model
	PostID    uint `json:"post_id" gorm:"index;not null"`
	UserID    uint `json:"user_id" gorm:"index;not null"`
	IsDeleted bool `json:"is_deleted" gorm:"default:false"`
}
