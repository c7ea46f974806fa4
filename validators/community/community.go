package communityValidator

import (
	"aimwell/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreatePostRequest is the validated post payload
type CreatePostRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string `json:"category"`
}

// CreatePost validates a community post
func CreatePost() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreatePostRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if len(strings.TrimSpace(reqData.Body)) == 0 {
			errors["body"] = "Post body is required!"
		}
		if len(reqData.Body) > 10000 {
			errors["body"] = "Post body is too long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPost", reqData)
		return c.Next()
	}
}

// CommentRequest is the validated comment payload
type CommentRequest struct {
	Body string `json:"body"`
}

// CreateComment validates a comment on a post
func CreateComment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		postID, err := c.ParamsInt("id")
		if err != nil || postID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid post id!", nil)
		}

		reqData := new(CommentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if len(strings.TrimSpace(reqData.Body)) == 0 {
			errors["body"] = "Comment body is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("postID", postID)
		c.Locals("validatedComment", reqData)
		return c.Next()
	}
}

// PostID validates the :id route param
func PostID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		postID, err := c.ParamsInt("id")
		if err != nil || postID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid post id!", nil)
		}
		c.Locals("postID", postID)
		return c.Next()
	}
}
