package adminController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"aimwell/config"
	adminController "aimwell/controllers/admin"
	"aimwell/middleware"
	"aimwell/models"
	"aimwell/routers/adminRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type rolesTestEnv struct {
	app *fiber.App
	db  *gorm.DB
}

func setupRolesTest(t *testing.T) *rolesTestEnv {
	t.Helper()
	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDb, err := db.DB()
	require.NoError(t, err)
	sqlDb.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.RoleGrant{}))

	roles := middleware.NewRoleChecker(db)
	app := fiber.New()
	adminRoutes.SetupAdminRoutes(app, adminController.NewRoleController(db, roles), roles)

	return &rolesTestEnv{app: app, db: db}
}

func (env *rolesTestEnv) newUser(t *testing.T, email, role string) (*models.User, string) {
	t.Helper()
	user := models.User{Email: email, Password: "hash", Role: role}
	require.NoError(t, env.db.Create(&user).Error)
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return &user, token
}

func (env *rolesTestEnv) request(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := env.app.Test(req, 5000)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp, parsed
}

func TestGrantModeratorRole(t *testing.T) {
	env := setupRolesTest(t)
	_, adminToken := env.newUser(t, "admin@example.com", models.RoleAdmin)
	target, _ := env.newUser(t, "wanjiku@example.com", models.RoleUser)

	resp, _ := env.request(t, "POST", "/admin/roles/grant", adminToken, fiber.Map{
		"email": target.Email,
		"role":  models.RoleModerator,
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var grant models.RoleGrant
	require.NoError(t, env.db.Where("user_id = ?", target.ID).First(&grant).Error)
	assert.Equal(t, models.RoleModerator, grant.Role)

	// granting twice conflicts
	resp, _ = env.request(t, "POST", "/admin/roles/grant", adminToken, fiber.Map{
		"email": target.Email,
		"role":  models.RoleModerator,
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestOnlySuperAdminGrantsAdmin(t *testing.T) {
	env := setupRolesTest(t)
	_, adminToken := env.newUser(t, "admin@example.com", models.RoleAdmin)
	_, rootToken := env.newUser(t, "root@example.com", models.RoleSuperAdmin)
	target, _ := env.newUser(t, "wanjiku@example.com", models.RoleUser)

	resp, _ := env.request(t, "POST", "/admin/roles/grant", adminToken, fiber.Map{
		"email": target.Email,
		"role":  models.RoleAdmin,
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = env.request(t, "POST", "/admin/roles/grant", rootToken, fiber.Map{
		"email": target.Email,
		"role":  models.RoleAdmin,
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestRevokeRole(t *testing.T) {
	env := setupRolesTest(t)
	admin, adminToken := env.newUser(t, "admin@example.com", models.RoleAdmin)
	target, _ := env.newUser(t, "mod@example.com", models.RoleUser)

	require.NoError(t, env.db.Create(&models.RoleGrant{UserID: target.ID, Role: models.RoleModerator, GrantedBy: admin.ID}).Error)

	resp, _ := env.request(t, "POST", "/admin/roles/revoke", adminToken, fiber.Map{
		"email": target.Email,
		"role":  models.RoleModerator,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	roles, err := middleware.NewRoleChecker(env.db).CurrentUserRoles(target.ID)
	require.NoError(t, err)
	assert.False(t, roles[models.RoleModerator])

	// revoking again is a 404
	resp, _ = env.request(t, "POST", "/admin/roles/revoke", adminToken, fiber.Map{
		"email": target.Email,
		"role":  models.RoleModerator,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMyRoles(t *testing.T) {
	env := setupRolesTest(t)
	_, rootToken := env.newUser(t, "root@example.com", models.RoleSuperAdmin)

	resp, parsed := env.request(t, "GET", "/roles/me", rootToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := parsed["data"].(map[string]interface{})
	assert.Equal(t, true, data["is_admin"])
	assert.Equal(t, true, data["is_super_admin"])
}

func TestRoleRoutesRequireAdmin(t *testing.T) {
	env := setupRolesTest(t)
	_, userToken := env.newUser(t, "wanjiku@example.com", models.RoleUser)

	resp, _ := env.request(t, "GET", "/admin/roles/", userToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
