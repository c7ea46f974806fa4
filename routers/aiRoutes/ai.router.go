package aiRoutes

import (
	aiController "aimwell/controllers/ai"
	"aimwell/middleware"
	aiValidator "aimwell/validators/ai"

	"github.com/gofiber/fiber/v2"
)

// SetupAIRoutes sets up the AI relay routes
func SetupAIRoutes(app *fiber.App, ai *aiController.AIController) {
	aiGroup := app.Group("/ai", middleware.JWTMiddleware)

	aiGroup.Post("/health-plan", aiValidator.HealthPlan(), ai.GenerateHealthPlan)
	aiGroup.Get("/health-plans", ai.GetHealthPlans)
	aiGroup.Post("/chat", aiValidator.Chat(), ai.Chat)
	aiGroup.Post("/summarize", aiValidator.Summarize(), ai.Summarize)
}
