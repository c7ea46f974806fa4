package middleware

import (
	"aimwell/models"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RoleChecker is the single authorization capability consumed by every
// protected surface; handlers never re-derive admin booleans themselves.
type RoleChecker interface {
	CurrentUserRoles(userID uint) (map[string]bool, error)
	Require(userID uint, role string) error
}

// DbRoleChecker resolves roles from the role_grants table plus the
// user's base role column.
type DbRoleChecker struct {
	Db *gorm.DB
}

func NewRoleChecker(db *gorm.DB) *DbRoleChecker {
	return &DbRoleChecker{Db: db}
}

func (rc *DbRoleChecker) CurrentUserRoles(userID uint) (map[string]bool, error) {
	roles := make(map[string]bool)

	var user models.User
	if err := rc.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return nil, err
	}
	if user.Role != "" {
		roles[user.Role] = true
	}

	var grants []models.RoleGrant
	if err := rc.Db.Where("user_id = ? AND is_deleted = false", userID).Find(&grants).Error; err != nil {
		return nil, err
	}
	for _, g := range grants {
		roles[g.Role] = true
	}

	// SUPER_ADMIN implies ADMIN
	if roles[models.RoleSuperAdmin] {
		roles[models.RoleAdmin] = true
	}
	return roles, nil
}

func (rc *DbRoleChecker) Require(userID uint, role string) error {
	roles, err := rc.CurrentUserRoles(userID)
	if err != nil {
		return err
	}
	if !roles[role] {
		return fmt.Errorf("missing required role %s", role)
	}
	return nil
}

// RequireRole returns a middleware that rejects requests lacking the role
func RequireRole(rc RoleChecker, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  false,
				"message": "Unauthorized: User ID not found",
				"data":    nil,
			})
		}

		if err := rc.Require(userID, role); err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  false,
				"message": "You do not have permission to access this resource!",
				"data":    nil,
			})
		}

		return c.Next()
	}
}
