package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	SubscriptionActive  = "ACTIVE"
	SubscriptionExpired = "EXPIRED"
	SubscriptionPending = "PENDING"

	SubscriptionPlanMonthly = "MONTHLY"
	SubscriptionPlanAnnual  = "ANNUAL"
)

// Subscription grants premium access; activated by a completed M-Pesa
// transaction and expired by the daily scheduler.
type Subscription struct {
	gorm.Model
	UserID        uint       `json:"user_id" gorm:"index;not null"`
	Plan          string     `json:"plan" gorm:"type:varchar(16);not null"` // MONTHLY, ANNUAL
	Status        string     `json:"status" gorm:"default:'PENDING'"`       // PENDING, ACTIVE, EXPIRED
	TransactionID uint       `json:"transaction_id" gorm:"index"`
	StartsAt      *time.Time `json:"starts_at"`
	ExpiresAt     *time.Time `json:"expires_at"`
	ReminderSent  bool       `json:"reminder_sent" gorm:"default:false"`
	IsDeleted     bool       `gorm:"default:false"`
}
