package adminValidator

import (
	"aimwell/middleware"
	"aimwell/models"
	"regexp"

	"github.com/gofiber/fiber/v2"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isKnownRole(role string) bool {
	switch role {
	case models.RoleUser, models.RoleModerator, models.RoleAdmin, models.RoleSuperAdmin:
		return true
	}
	return false
}

// RoleGrantRequest is the validated grant/revoke payload
type RoleGrantRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Notes string `json:"notes"`
}

// RoleGrant validates a role grant or revoke by email
func RoleGrant() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RoleGrantRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if !emailRe.MatchString(reqData.Email) {
			errors["email"] = "Invalid email!"
		}
		if !isKnownRole(reqData.Role) {
			errors["role"] = "Unknown role!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRoleGrant", reqData)
		return c.Next()
	}
}
