package paymentRoutes

import (
	paymentController "aimwell/controllers/payment"
	"aimwell/middleware"
	paymentValidator "aimwell/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up M-Pesa payment routes. The callback is public:
// the gateway cannot authenticate with a user token.
func SetupPaymentRoutes(app *fiber.App, pc *paymentController.PaymentController) {
	paymentGroup := app.Group("/payment")

	paymentGroup.Post("/stkpush", middleware.JWTMiddleware, paymentValidator.STKPush(), pc.InitiateSTKPush)
	paymentGroup.Post("/callback", pc.MpesaCallback)
	paymentGroup.Get("/history", middleware.JWTMiddleware, pc.GetUserTransactions)
	paymentGroup.Get("/:id", middleware.JWTMiddleware, paymentValidator.TransactionID(), pc.GetTransaction)
	paymentGroup.Get("/:id/wait", middleware.JWTMiddleware, paymentValidator.TransactionID(), pc.WaitForTransaction)
}
