package subscriptionController

import (
	"time"

	"aimwell/middleware"
	"aimwell/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plan prices in KES
const (
	MonthlyPrice = 500
	AnnualPrice  = 4800
)

// SubscriptionController activates and reports premium subscriptions.
// Activation consumes a completed M-Pesa transaction.
type SubscriptionController struct {
	Db *gorm.DB
}

func NewSubscriptionController(db *gorm.DB) *SubscriptionController {
	return &SubscriptionController{Db: db}
}

// GetPlans lists the available subscription plans
func (sc *SubscriptionController) GetPlans(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plans fetched!", fiber.Map{
		"plans": []fiber.Map{
			{"plan": models.SubscriptionPlanMonthly, "price": MonthlyPrice, "currency": "KES", "days": 30},
			{"plan": models.SubscriptionPlanAnnual, "price": AnnualPrice, "currency": "KES", "days": 365},
		},
	})
}

// Activate turns a completed transaction into an active subscription
func (sc *SubscriptionController) Activate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		Plan          string `json:"plan"`
		TransactionID uint   `json:"transaction_id"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var price uint
	var days int
	switch reqData.Plan {
	case models.SubscriptionPlanMonthly:
		price, days = MonthlyPrice, 30
	case models.SubscriptionPlanAnnual:
		price, days = AnnualPrice, 365
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown plan!", nil)
	}

	var txn models.MpesaTransaction
	if err := sc.Db.Where("id = ? AND user_id = ?", reqData.TransactionID, userID).First(&txn).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found!", nil)
	}
	if txn.Status != models.TransactionStatusCompleted {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Transaction is not completed!", nil)
	}
	if txn.Amount < price {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Transaction amount does not cover the plan!", nil)
	}

	// One subscription per transaction
	var used models.Subscription
	if err := sc.Db.Where("transaction_id = ? AND is_deleted = false", txn.ID).First(&used).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Transaction already used for a subscription!", nil)
	}

	now := time.Now()
	expires := now.AddDate(0, 0, days)

	// Extend from the current expiry when one is still active
	var current models.Subscription
	if err := sc.Db.Where("user_id = ? AND status = ? AND is_deleted = false", userID, models.SubscriptionActive).First(&current).Error; err == nil {
		if current.ExpiresAt != nil && current.ExpiresAt.After(now) {
			expires = current.ExpiresAt.AddDate(0, 0, days)
		}
		sc.Db.Model(&current).Update("status", models.SubscriptionExpired)
	}

	sub := models.Subscription{
		UserID:        userID,
		Plan:          reqData.Plan,
		Status:        models.SubscriptionActive,
		TransactionID: txn.ID,
		StartsAt:      &now,
		ExpiresAt:     &expires,
	}
	if err := sc.Db.Create(&sub).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to activate subscription!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Subscription activated!", sub)
}

// GetStatus returns the caller's current subscription, if any
func (sc *SubscriptionController) GetStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var sub models.Subscription
	if err := sc.Db.Where("user_id = ? AND status = ? AND is_deleted = false", userID, models.SubscriptionActive).
		Order("expires_at desc").First(&sub).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No active subscription.", fiber.Map{
			"active": false,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription fetched!", fiber.Map{
		"active":       true,
		"subscription": sub,
	})
}
