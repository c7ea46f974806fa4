package utils

import (
	"context"
	"time"

	"aimwell/models"

	"gorm.io/gorm"
)

// WaitForTransaction polls a transaction row until it reaches a terminal
// status or ctx is done. Every decision is made on the freshest row, and on
// deadline the latest observed status is returned rather than a blanket
// failure, so a payment that completes just before the deadline is never
// reported failed.
func WaitForTransaction(ctx context.Context, db *gorm.DB, txnID uint, interval time.Duration) (*models.MpesaTransaction, error) {
	if interval <= 0 {
		interval = 3 * time.Second
	}

	read := func() (*models.MpesaTransaction, error) {
		var txn models.MpesaTransaction
		if err := db.Where("id = ?", txnID).First(&txn).Error; err != nil {
			return nil, err
		}
		return &txn, nil
	}

	txn, err := read()
	if err != nil {
		return nil, err
	}
	if txn.Status != models.TransactionStatusPending {
		return txn, nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// one last fresh read so the caller sees the true final state
			if latest, err := read(); err == nil {
				return latest, ctx.Err()
			}
			return txn, ctx.Err()
		case <-ticker.C:
			txn, err = read()
			if err != nil {
				return nil, err
			}
			if txn.Status != models.TransactionStatusPending {
				return txn, nil
			}
		}
	}
}
