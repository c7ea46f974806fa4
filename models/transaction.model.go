package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TransactionStatusPending   = "PENDING"
	TransactionStatusCompleted = "COMPLETED"
	TransactionStatusFailed    = "FAILED"
)

// MpesaTransaction is created on STK push initiation and mutated once by
// the asynchronous gateway callback. Rows are never deleted.
type MpesaTransaction struct {
	gorm.Model
	UserID            uint       `json:"user_id" gorm:"index;not null"`
	PhoneNumber       string     `json:"phone_number" gorm:"not null"`
	Amount            uint       `json:"amount" gorm:"not null"`
	AccountReference  string     `json:"account_reference"`
	Description       string     `json:"description"`
	MerchantRequestID string     `json:"merchant_request_id"`
	CheckoutRequestID string     `json:"checkout_request_id" gorm:"uniqueIndex;not null"`
	Status            string     `json:"status" gorm:"default:'PENDING'"` // PENDING, COMPLETED, FAILED
	ReceiptNumber     string     `json:"receipt_number"`
	ResultDesc        string     `json:"result_desc"`
	TransactionDate   *time.Time `json:"transaction_date"`
	IsDeleted         bool       `gorm:"default:false"`
}
