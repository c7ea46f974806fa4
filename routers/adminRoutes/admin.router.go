package adminRoutes

import (
	adminController "aimwell/controllers/admin"
	"aimwell/middleware"
	"aimwell/models"
	adminValidator "aimwell/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up role management routes
func SetupAdminRoutes(app *fiber.App, rc *adminController.RoleController, roles middleware.RoleChecker) {
	app.Get("/roles/me", middleware.JWTMiddleware, rc.MyRoles)

	roleGroup := app.Group("/admin/roles", middleware.JWTMiddleware, middleware.RequireRole(roles, models.RoleAdmin))
	roleGroup.Get("/", rc.ListGrants)
	roleGroup.Post("/grant", adminValidator.RoleGrant(), rc.GrantRole)
	roleGroup.Post("/revoke", adminValidator.RoleGrant(), rc.RevokeRole)
}
