package communityController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"aimwell/config"
	communityController "aimwell/controllers/community"
	"aimwell/middleware"
	"aimwell/models"
	"aimwell/routers/communityRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type communityTestEnv struct {
	app *fiber.App
	db  *gorm.DB
}

func setupCommunityTest(t *testing.T) *communityTestEnv {
	t.Helper()
	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDb, err := db.DB()
	require.NoError(t, err)
	sqlDb.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.RoleGrant{}, &models.Post{}, &models.Comment{}, &models.Like{}))

	app := fiber.New()
	communityRoutes.SetupCommunityRoutes(app, communityController.NewCommunityController(db, middleware.NewRoleChecker(db)))

	return &communityTestEnv{app: app, db: db}
}

func (env *communityTestEnv) newUser(t *testing.T, email, role string) (*models.User, string) {
	t.Helper()
	user := models.User{Email: email, Password: "hash", Role: role}
	require.NoError(t, env.db.Create(&user).Error)
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return &user, token
}

func (env *communityTestEnv) request(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
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

func TestCreatePostAndFeed(t *testing.T) {
	env := setupCommunityTest(t)
	_, token := env.newUser(t, "wanjiku@example.com", models.RoleUser)

	resp, _ := env.request(t, "POST", "/community/post", token, fiber.Map{
		"title": "Morning runs",
		"body":  "Anyone up for a 6am run around Karura?",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, parsed := env.request(t, "GET", "/community/feed", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := parsed["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
}

func TestCommentAndLike(t *testing.T) {
	env := setupCommunityTest(t)
	author, token := env.newUser(t, "wanjiku@example.com", models.RoleUser)

	post := models.Post{UserID: author.ID, Body: "hello"}
	require.NoError(t, env.db.Create(&post).Error)

	resp, _ := env.request(t, "POST", fmt.Sprintf("/community/post/%d/comment", post.ID), token, fiber.Map{
		"body": "Welcome!",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, parsed := env.request(t, "POST", fmt.Sprintf("/community/post/%d/like", post.ID), token, nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := parsed["data"].(map[string]interface{})
	assert.Equal(t, true, data["liked"])

	// toggling again removes the like
	resp, parsed = env.request(t, "POST", fmt.Sprintf("/community/post/%d/like", post.ID), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = parsed["data"].(map[string]interface{})
	assert.Equal(t, false, data["liked"])
}

func TestDeletePostOwnerAndModerator(t *testing.T) {
	env := setupCommunityTest(t)
	author, authorToken := env.newUser(t, "wanjiku@example.com", models.RoleUser)
	_, strangerToken := env.newUser(t, "stranger@example.com", models.RoleUser)
	_, modToken := env.newUser(t, "mod@example.com", models.RoleModerator)

	post := models.Post{UserID: author.ID, Body: "first"}
	require.NoError(t, env.db.Create(&post).Error)

	// a stranger cannot delete it
	resp, _ := env.request(t, "DELETE", fmt.Sprintf("/community/post/%d", post.ID), strangerToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// the owner can
	resp, _ = env.request(t, "DELETE", fmt.Sprintf("/community/post/%d", post.ID), authorToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var deleted models.Post
	require.NoError(t, env.db.First(&deleted, post.ID).Error)
	assert.True(t, deleted.IsDeleted)

	// a moderator can delete someone else's post
	second := models.Post{UserID: author.ID, Body: "second"}
	require.NoError(t, env.db.Create(&second).Error)

	resp, _ = env.request(t, "DELETE", fmt.Sprintf("/community/post/%d", second.ID), modToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
