package supportRoutes

import (
	supportController "aimwell/controllers/support"
	"aimwell/middleware"
	"aimwell/models"
	supportValidator "aimwell/validators/support"

	"github.com/gofiber/fiber/v2"
)

// SetupSupportRoutes sets up support ticket routes
func SetupSupportRoutes(app *fiber.App, sc *supportController.SupportController, roles middleware.RoleChecker) {
	supportGroup := app.Group("/support", middleware.JWTMiddleware)

	supportGroup.Post("/ticket", supportValidator.CreateTicket(), sc.CreateTicket)
	supportGroup.Get("/tickets", sc.GetUserTickets)

	adminGroup := app.Group("/admin/support", middleware.JWTMiddleware, middleware.RequireRole(roles, models.RoleAdmin))
	adminGroup.Get("/tickets", sc.ListOpenTickets)
	adminGroup.Post("/ticket/:id/respond", supportValidator.RespondTicket(), sc.RespondTicket)
}
