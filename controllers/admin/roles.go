package adminController

import (
	"aimwell/middleware"
	"aimwell/models"
	adminValidator "aimwell/validators/admin"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RoleController handles role grants and revocations by email
type RoleController struct {
	Db    *gorm.DB
	Roles middleware.RoleChecker
}

func NewRoleController(db *gorm.DB, roles middleware.RoleChecker) *RoleController {
	return &RoleController{Db: db, Roles: roles}
}

// GrantRole assigns a role to a user identified by email
func (rc *RoleController) GrantRole(c *fiber.Ctx) error {
	granterID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedRoleGrant").(*adminValidator.RoleGrantRequest)

	// Only super admins may hand out ADMIN or SUPER_ADMIN
	if reqData.Role == models.RoleAdmin || reqData.Role == models.RoleSuperAdmin {
		if err := rc.Roles.Require(granterID, models.RoleSuperAdmin); err != nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only super admins can grant admin roles!", nil)
		}
	}

	var target models.User
	if err := rc.Db.Where("email = ? AND is_deleted = false", reqData.Email).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No user with that email!", nil)
	}

	var existing models.RoleGrant
	if err := rc.Db.Where("user_id = ? AND role = ? AND is_deleted = false", target.ID, reqData.Role).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already has that role!", nil)
	}

	grant := models.RoleGrant{
		UserID:    target.ID,
		Role:      reqData.Role,
		GrantedBy: granterID,
		Notes:     reqData.Notes,
	}
	if err := rc.Db.Create(&grant).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to grant role!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Role granted successfully!", grant)
}

// RevokeRole removes a role grant from a user identified by email
func (rc *RoleController) RevokeRole(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedRoleGrant").(*adminValidator.RoleGrantRequest)

	var target models.User
	if err := rc.Db.Where("email = ? AND is_deleted = false", reqData.Email).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No user with that email!", nil)
	}

	result := rc.Db.Model(&models.RoleGrant{}).
		Where("user_id = ? AND role = ? AND is_deleted = false", target.ID, reqData.Role).
		Update("is_deleted", true)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to revoke role!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User does not have that role!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role revoked successfully!", nil)
}

// MyRoles returns the caller's effective role set
func (rc *RoleController) MyRoles(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	roles, err := rc.Roles.CurrentUserRoles(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve roles!", nil)
	}

	list := make([]string, 0, len(roles))
	for role := range roles {
		list = append(list, role)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Roles fetched!", fiber.Map{
		"roles":          list,
		"is_admin":       roles[models.RoleAdmin],
		"is_super_admin": roles[models.RoleSuperAdmin],
	})
}

// ListGrants returns all active role grants (admin only)
func (rc *RoleController) ListGrants(c *fiber.Ctx) error {
	var grants []models.RoleGrant
	if err := rc.Db.Where("is_deleted = false").Order("created_at desc").Find(&grants).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch grants!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Grants fetched!", fiber.Map{
		"grants": grants,
		"total":  len(grants),
	})
}
