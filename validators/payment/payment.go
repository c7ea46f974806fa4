package paymentValidator

import (
	"aimwell/middleware"
	"aimwell/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	MinAmount = 1
	MaxAmount = 150000
)

// STKPushRequest is the validated push-payment payload. Phone is already
// normalized to 254 format when the controller sees it.
type STKPushRequest struct {
	Phone            string `json:"phone"`
	Amount           uint   `json:"amount"`
	AccountReference string `json:"account_reference"`
	Description      string `json:"description"`
}

// STKPush validates phone and amount before any gateway call is made
func STKPush() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(STKPushRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		normalized, err := utils.FormatPhoneNumber(reqData.Phone)
		if err != nil {
			errors["phone"] = "Invalid Kenyan phone number! Use 07XXXXXXXX, 01XXXXXXXX or 254XXXXXXXXX."
		} else {
			reqData.Phone = normalized
		}

		if reqData.Amount < MinAmount || reqData.Amount > MaxAmount {
			errors["amount"] = "Amount must be between 1 and 150000 KES!"
		}

		if reqData.AccountReference == "" {
			reqData.AccountReference = "AIMWELL"
		}
		if reqData.Description == "" {
			reqData.Description = "Aimwell payment"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSTKPush", reqData)
		return c.Next()
	}
}

// TransactionID validates the :id route param
func TransactionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid transaction id!", nil)
		}
		c.Locals("transactionID", id)
		return c.Next()
	}
}
