package models

import "gorm.io/gorm"

type SupportTicket struct {
	gorm.Model
	UserID      uint   `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status" gorm:"default:'OPEN'"` // OPEN, RESPONDED, CLOSED
	Priority    string `json:"priority" gorm:"default:'MEDIUM'"`
	Category    string `json:"category" gorm:"default:'GENERAL'"`
	Response    string `json:"response"`
	RespondedBy uint   `json:"responded_by"`
	IsDeleted   bool   `json:"is_deleted" gorm:"default:false"`
}
