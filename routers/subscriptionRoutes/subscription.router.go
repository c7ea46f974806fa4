package subscriptionRoutes

import (
	subscriptionController "aimwell/controllers/subscription"
	"aimwell/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupSubscriptionRoutes sets up subscription billing routes
func SetupSubscriptionRoutes(app *fiber.App, sc *subscriptionController.SubscriptionController) {
	subGroup := app.Group("/subscription", middleware.JWTMiddleware)

	subGroup.Get("/plans", sc.GetPlans)
	subGroup.Post("/activate", sc.Activate)
	subGroup.Get("/status", sc.GetStatus)
}
