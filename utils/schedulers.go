package utils

import (
	"log"
	"time"

	"aimwell/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// PendingTransactionCutoff is how long a PENDING M-Pesa row may sit before
// reconciliation marks it failed. The gateway delivers callbacks within a
// couple of minutes; anything older never got one.
const PendingTransactionCutoff = 15 * time.Minute

// InitializeSchedulers sets up the recurring jobs: subscription expiry
// checks daily at 9 AM and payment reconciliation every 10 minutes.
func InitializeSchedulers(db *gorm.DB, mailer *Mailer) *cron.Cron {
	log.Println("[SCHEDULER] Initializing schedulers...")

	c := cron.New()

	c.AddFunc("0 9 * * *", func() {
		log.Println("[SCHEDULER] Running daily subscription check...")
		ProcessExpiringSubscriptions(db, mailer)
		ExpireSubscriptions(db, mailer)
	})

	c.AddFunc("*/10 * * * *", func() {
		ReconcileStalePayments(db)
	})

	c.Start()
	log.Println("[SCHEDULER] Schedulers started")
	return c
}

// ProcessExpiringSubscriptions sends reminder emails for subscriptions expiring in 2 days
func ProcessExpiringSubscriptions(db *gorm.DB, mailer *Mailer) {
	now := time.Now()
	twoDaysFromNow := now.AddDate(0, 0, 2)

	var expiring []models.Subscription
	if err := db.
		Where("status = ? AND reminder_sent = false AND expires_at IS NOT NULL", models.SubscriptionActive).
		Where("expires_at BETWEEN ? AND ?", now, twoDaysFromNow).
		Find(&expiring).Error; err != nil {
		log.Printf("[SCHEDULER] Error fetching expiring subscriptions: %v", err)
		return
	}

	for _, sub := range expiring {
		var user models.User
		if err := db.Where("id = ?", sub.UserID).First(&user).Error; err != nil {
			log.Printf("[SCHEDULER] Error fetching user %d: %v", sub.UserID, err)
			continue
		}

		mailer.SendSubscriptionExpiryReminder(user.Email, user.Name, sub.Plan, sub.ExpiresAt)

		db.Model(&sub).Update("reminder_sent", true)
		log.Printf("[SCHEDULER] Sent expiry reminder for subscription %d to %s", sub.ID, user.Email)
	}
}

// ExpireSubscriptions marks expired subscriptions as EXPIRED
func ExpireSubscriptions(db *gorm.DB, mailer *Mailer) {
	now := time.Now()

	result := db.Model(&models.Subscription{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.SubscriptionActive, now).
		Updates(map[string]interface{}{"status": models.SubscriptionExpired})

	if result.Error != nil {
		log.Printf("[SCHEDULER] Error expiring subscriptions: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[SCHEDULER] Expired %d subscriptions", result.RowsAffected)

		var expired []models.Subscription
		db.Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.SubscriptionExpired, now).
			Where("updated_at > ?", now.Add(-time.Hour)). // only recently expired
			Find(&expired)

		for _, sub := range expired {
			var user models.User
			if err := db.Where("id = ?", sub.UserID).First(&user).Error; err == nil {
				mailer.SendSubscriptionExpiredEmail(user.Email, user.Name, sub.Plan)
			}
		}
	}
}

// ReconcileStalePayments fails PENDING transactions that never received a
// gateway callback within the cutoff window.
func ReconcileStalePayments(db *gorm.DB) {
	cutoff := time.Now().Add(-PendingTransactionCutoff)

	result := db.Model(&models.MpesaTransaction{}).
		Where("status = ? AND created_at < ?", models.TransactionStatusPending, cutoff).
		Updates(map[string]interface{}{
			"status":      models.TransactionStatusFailed,
			"result_desc": "No gateway callback received within cutoff",
		})

	if result.Error != nil {
		log.Printf("[SCHEDULER] Error reconciling stale payments: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[SCHEDULER] Marked %d stale transactions as failed", result.RowsAffected)
	}
}
