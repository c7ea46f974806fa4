package supportValidator

import (
	"aimwell/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreateTicketRequest is the validated ticket payload
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
}

// CreateTicket validates a new support ticket
func CreateTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateTicketRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if len(strings.TrimSpace(reqData.Title)) < 5 {
			errors["title"] = "Title must be at least 5 characters long!"
		}
		if len(strings.TrimSpace(reqData.Description)) < 10 {
			errors["description"] = "Description must be at least 10 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTicket", reqData)
		return c.Next()
	}
}

// RespondRequest is the validated admin response payload
type RespondRequest struct {
	Response string `json:"response"`
	Close    bool   `json:"close"`
}

// RespondTicket validates an admin response to a ticket
func RespondTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ticketID, err := c.ParamsInt("id")
		if err != nil || ticketID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
		}

		reqData := new(RespondRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(strings.TrimSpace(reqData.Response)) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"response": "Response is required!"})
		}

		c.Locals("ticketID", ticketID)
		c.Locals("validatedResponse", reqData)
		return c.Next()
	}
}
