package authController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"aimwell/config"
	authController "aimwell/controllers/auth"
	"aimwell/models"
	"aimwell/routers/authRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type authTestEnv struct {
	app *fiber.App
	db  *gorm.DB
}

func setupAuthTest(t *testing.T) *authTestEnv {
	t.Helper()
	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDb, err := db.DB()
	require.NoError(t, err)
	sqlDb.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app, authController.NewAuthController(db))

	return &authTestEnv{app: app, db: db}
}

func (env *authTestEnv) post(t *testing.T, path string, body interface{}, headers map[string]string) (*http.Response, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := env.app.Test(req, 10000)
	require.NoError(t, err)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(respBody, &parsed))
	return resp, parsed
}

func TestSignupAndLogin(t *testing.T) {
	env := setupAuthTest(t)

	resp, parsed := env.post(t, "/auth/signup", fiber.Map{
		"name":     "Wanjiku",
		"email":    "wanjiku@example.com",
		"phone":    "0712345678",
		"password": "Str0ngPass!",
	}, nil)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := parsed["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	var user models.User
	require.NoError(t, env.db.Where("email = ?", "wanjiku@example.com").First(&user).Error)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "Str0ngPass!", user.Password, "password must be stored hashed")

	resp, parsed = env.post(t, "/auth/login", fiber.Map{
		"email":    "wanjiku@example.com",
		"password": "Str0ngPass!",
	}, nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = parsed["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	env := setupAuthTest(t)

	body := fiber.Map{
		"name":     "Wanjiku",
		"email":    "wanjiku@example.com",
		"phone":    "0712345678",
		"password": "Str0ngPass!",
	}
	resp, _ := env.post(t, "/auth/signup", body, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = env.post(t, "/auth/signup", body, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	env := setupAuthTest(t)

	resp, _ := env.post(t, "/auth/signup", fiber.Map{
		"name":     "Wanjiku",
		"email":    "wanjiku@example.com",
		"phone":    "0712345678",
		"password": "Str0ngPass!",
	}, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, parsed := env.post(t, "/auth/login", fiber.Map{
		"email":    "wanjiku@example.com",
		"password": "wrong-password",
	}, nil)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, parsed["status"])
}

func TestLoginUnknownEmail(t *testing.T) {
	env := setupAuthTest(t)

	resp, _ := env.post(t, "/auth/login", fiber.Map{
		"email":    "nobody@example.com",
		"password": "whatever123",
	}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
