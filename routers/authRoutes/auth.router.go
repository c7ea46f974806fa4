package authRoutes

import (
	authController "aimwell/controllers/auth"
	"aimwell/middleware"
	authValidator "aimwell/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up signup, login and profile routes
func SetupAuthRoutes(app *fiber.App, ac *authController.AuthController) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), ac.Signup)
	authGroup.Post("/login", authValidator.Login(), ac.Login)
	authGroup.Get("/profile", middleware.JWTMiddleware, ac.GetProfile)
}
