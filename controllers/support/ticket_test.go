package supportController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"aimwell/config"
	supportController "aimwell/controllers/support"
	"aimwell/middleware"
	"aimwell/models"
	"aimwell/routers/supportRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type supportTestEnv struct {
	app *fiber.App
	db  *gorm.DB
}

func setupSupportTest(t *testing.T) *supportTestEnv {
	t.Helper()
	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDb, err := db.DB()
	require.NoError(t, err)
	sqlDb.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.RoleGrant{}, &models.SupportTicket{}))

	app := fiber.New()
	supportRoutes.SetupSupportRoutes(app, supportController.NewSupportController(db), middleware.NewRoleChecker(db))

	return &supportTestEnv{app: app, db: db}
}

func (env *supportTestEnv) newUser(t *testing.T, email, role string) (*models.User, string) {
	t.Helper()
	user := models.User{Email: email, Password: "hash", Role: role}
	require.NoError(t, env.db.Create(&user).Error)
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return &user, token
}

func (env *supportTestEnv) request(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
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

func TestCreateAndListTickets(t *testing.T) {
	env := setupSupportTest(t)
	_, token := env.newUser(t, "wanjiku@example.com", models.RoleUser)

	resp, _ := env.request(t, "POST", "/support/ticket", token, fiber.Map{
		"title":       "Payment not reflecting",
		"description": "Paid via M-Pesa an hour ago and my subscription is still inactive.",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var ticket models.SupportTicket
	require.NoError(t, env.db.First(&ticket).Error)
	assert.Equal(t, "OPEN", ticket.Status)
	assert.Equal(t, "MEDIUM", ticket.Priority)

	resp, parsed := env.request(t, "GET", "/support/tickets", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := parsed["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
}

func TestAdminTicketSurfaceRequiresRole(t *testing.T) {
	env := setupSupportTest(t)
	_, userToken := env.newUser(t, "wanjiku@example.com", models.RoleUser)

	resp, _ := env.request(t, "GET", "/admin/support/tickets", userToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRespondTicket(t *testing.T) {
	env := setupSupportTest(t)
	user, _ := env.newUser(t, "wanjiku@example.com", models.RoleUser)
	admin, adminToken := env.newUser(t, "admin@example.com", models.RoleAdmin)

	ticket := models.SupportTicket{UserID: user.ID, Title: "Help", Description: "Cannot log in", Status: "OPEN"}
	require.NoError(t, env.db.Create(&ticket).Error)

	resp, _ := env.request(t, "POST", fmt.Sprintf("/admin/support/ticket/%d/respond", ticket.ID), adminToken, fiber.Map{
		"response": "Please reset your password from the login page.",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.SupportTicket
	require.NoError(t, env.db.First(&updated, ticket.ID).Error)
	assert.Equal(t, "RESPONDED", updated.Status)
	assert.Equal(t, admin.ID, updated.RespondedBy)

	// closing on response
	resp, _ = env.request(t, "POST", fmt.Sprintf("/admin/support/ticket/%d/respond", ticket.ID), adminToken, fiber.Map{
		"response": "Resolved.",
		"close":    true,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, env.db.First(&updated, ticket.ID).Error)
	assert.Equal(t, "CLOSED", updated.Status)
}
