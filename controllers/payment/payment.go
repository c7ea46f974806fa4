package paymentController

import (
	"context"
	"log"
	"time"

	"aimwell/middleware"
	"aimwell/models"
	"aimwell/utils"
	paymentValidator "aimwell/validators/payment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PaymentController handles M-Pesa STK push initiation, the gateway
// callback and status reads.
type PaymentController struct {
	Db    *gorm.DB
	Mpesa *utils.DarajaClient
}

func NewPaymentController(db *gorm.DB, mpesa *utils.DarajaClient) *PaymentController {
	return &PaymentController{Db: db, Mpesa: mpesa}
}

// InitiateSTKPush submits a push-payment request and records a pending
// transaction row keyed by the gateway's request identifiers.
func (pc *PaymentController) InitiateSTKPush(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := pc.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedSTKPush").(*paymentValidator.STKPushRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if pc.Mpesa == nil {
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Payment service is not configured!", nil)
	}

	result, err := pc.Mpesa.InitiateSTKPush(reqData.Phone, reqData.Amount, reqData.AccountReference, reqData.Description)
	if err != nil {
		log.Printf("STK push failed for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to initiate payment. Please try again.", nil)
	}

	transaction := models.MpesaTransaction{
		UserID:            userID,
		PhoneNumber:       reqData.Phone,
		Amount:            reqData.Amount,
		AccountReference:  reqData.AccountReference,
		Description:       reqData.Description,
		MerchantRequestID: result.MerchantRequestID,
		CheckoutRequestID: result.CheckoutRequestID,
		Status:            models.TransactionStatusPending,
	}

	if err := pc.Db.Create(&transaction).Error; err != nil {
		log.Printf("Failed to record transaction for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record transaction!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "STK push sent. Enter your M-Pesa PIN on your phone.", fiber.Map{
		"transactionId":     transaction.ID,
		"checkoutRequestId": transaction.CheckoutRequestID,
		"phone":             transaction.PhoneNumber,
		"amount":            transaction.Amount,
		"status":            transaction.Status,
	})
}

// MpesaCallback receives the asynchronous gateway webhook. It always
// acknowledges with a success envelope so the gateway does not retry;
// internal failures are only logged.
func (pc *PaymentController) MpesaCallback(c *fiber.Ctx) error {
	ack := fiber.Map{"ResultCode": 0, "ResultDesc": "Accepted"}

	var callback utils.STKCallback
	if err := c.BodyParser(&callback); err != nil {
		log.Printf("Unparseable M-Pesa callback: %v", err)
		return c.Status(fiber.StatusOK).JSON(ack)
	}

	stk := callback.Body.StkCallback
	if stk.CheckoutRequestID == "" {
		log.Printf("M-Pesa callback missing CheckoutRequestID")
		return c.Status(fiber.StatusOK).JSON(ack)
	}

	var transaction models.MpesaTransaction
	if err := pc.Db.Where("checkout_request_id = ?", stk.CheckoutRequestID).First(&transaction).Error; err != nil {
		log.Printf("M-Pesa callback for unknown CheckoutRequestID %s", stk.CheckoutRequestID)
		return c.Status(fiber.StatusOK).JSON(ack)
	}

	updates := map[string]interface{}{
		"result_desc": stk.ResultDesc,
	}

	if stk.ResultCode == 0 {
		updates["status"] = models.TransactionStatusCompleted
		updates["receipt_number"] = callback.MetadataString("MpesaReceiptNumber")

		if phone := callback.MetadataString("PhoneNumber"); phone != "" {
			updates["phone_number"] = phone
		}
		if dateStr := callback.MetadataString("TransactionDate"); dateStr != "" {
			// TransactionDate arrives as YYYYMMDDHHMMSS
			if ts, err := time.ParseInLocation("20060102150405", dateStr, time.Local); err == nil {
				updates["transaction_date"] = ts
			}
		}
	} else {
		updates["status"] = models.TransactionStatusFailed
	}

	if err := pc.Db.Model(&transaction).Updates(updates).Error; err != nil {
		log.Printf("Failed to update transaction %d from callback: %v", transaction.ID, err)
	}

	return c.Status(fiber.StatusOK).JSON(ack)
}

// GetTransaction returns the current status of the caller's transaction
func (pc *PaymentController) GetTransaction(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	txnID := c.Locals("transactionID").(int)

	var transaction models.MpesaTransaction
	if err := pc.Db.Where("id = ? AND user_id = ?", txnID, userID).First(&transaction).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transaction fetched!", transaction)
}

// WaitForTransaction long-polls the caller's transaction until it reaches a
// terminal status or the deadline passes. The deadline is capped at 60s and
// the poll is cancelled if the client disconnects.
func (pc *PaymentController) WaitForTransaction(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	txnID := c.Locals("transactionID").(int)

	var transaction models.MpesaTransaction
	if err := pc.Db.Where("id = ? AND user_id = ?", txnID, userID).First(&transaction).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found!", nil)
	}

	timeout := time.Duration(c.QueryInt("timeout", 60)) * time.Second
	if timeout <= 0 || timeout > 60*time.Second {
		timeout = 60 * time.Second
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
	defer cancel()

	latest, err := utils.WaitForTransaction(ctx, pc.Db, transaction.ID, 3*time.Second)
	if err != nil && latest == nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to poll transaction!", nil)
	}

	message := "Transaction resolved!"
	if latest.Status == models.TransactionStatusPending {
		message = "Transaction still pending. Poll again or wait for the callback."
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, latest)
}

// GetUserTransactions lists the caller's transactions, newest first
func (pc *PaymentController) GetUserTransactions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var transactions []models.MpesaTransaction
	if err := pc.Db.Where("user_id = ?", userID).Order("created_at desc").Find(&transactions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch transactions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transactions fetched!", fiber.Map{
		"transactions": transactions,
		"total":        len(transactions),
	})
}
