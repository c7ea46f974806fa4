package communityRoutes

import (
	communityController "aimwell/controllers/community"
	"aimwell/middleware"
	communityValidator "aimwell/validators/community"

	"github.com/gofiber/fiber/v2"
)

// SetupCommunityRoutes sets up the social feed routes
func SetupCommunityRoutes(app *fiber.App, cc *communityController.CommunityController) {
	communityGroup := app.Group("/community", middleware.JWTMiddleware)

	communityGroup.Get("/feed", cc.GetFeed)
	communityGroup.Post("/post", communityValidator.CreatePost(), cc.CreatePost)
	communityGroup.Post("/post/:id/comment", communityValidator.CreateComment(), cc.AddComment)
	communityGroup.Post("/post/:id/like", communityValidator.PostID(), cc.ToggleLike)
	communityGroup.Delete("/post/:id", communityValidator.PostID(), cc.DeletePost)
}
