package courseController_test

import (
	"fmt"
	"testing"

	courseController "aimwell/controllers/course"
	"aimwell/middleware"
	"aimwell/models"
	"aimwell/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupAdminCourseTest extends the student env with the authoring surface
// and an admin token.
func setupAdminCourseTest(t *testing.T) (*courseTestEnv, string) {
	t.Helper()
	env := setupCourseTest(t)
	require.NoError(t, env.db.AutoMigrate(&models.RoleGrant{}))

	admin := models.User{Name: "Admin", Email: "admin@example.com", Password: "hash", Role: models.RoleAdmin}
	require.NoError(t, env.db.Create(&admin).Error)
	adminToken, err := middleware.GenerateJWT(admin.ID, admin.Name, admin.Role, admin.Email)
	require.NoError(t, err)

	courseRoutes.SetupAdminCourseRoutes(env.app, courseController.NewAdminCourseController(env.db), middleware.NewRoleChecker(env.db))
	return env, adminToken
}

func (env *courseTestEnv) adminRequest(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	saved := env.token
	env.token = token
	resp, parsed := env.request(t, method, path, body)
	env.token = saved
	return resp.StatusCode, parsed
}

func TestAuthoringLifecycle(t *testing.T) {
	env, adminToken := setupAdminCourseTest(t)

	status, parsed := env.adminRequest(t, "POST", "/admin/course/", adminToken, fiber.Map{
		"title":       "Mental Wellness 101",
		"description": "Managing stress and building resilience",
		"author":      "Dr. Achieng",
	})
	require.Equal(t, fiber.StatusCreated, status)

	data := parsed["data"].(map[string]interface{})
	courseID := uint(data["ID"].(float64))
	assert.Equal(t, "DRAFT", data["status"])

	// draft courses are invisible to students
	resp, listing := env.request(t, "GET", "/course/list", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), listing["data"].(map[string]interface{})["total"])

	status, parsed = env.adminRequest(t, "POST", fmt.Sprintf("/admin/course/%d/lesson", courseID), adminToken, fiber.Map{
		"title": "Breathing exercises",
		"body":  "Box breathing, 4-7-8 and more.",
	})
	require.Equal(t, fiber.StatusCreated, status)
	lessonID := uint(parsed["data"].(map[string]interface{})["ID"].(float64))

	status, parsed = env.adminRequest(t, "POST", fmt.Sprintf("/admin/course/lesson/%d/quiz", lessonID), adminToken, fiber.Map{
		"title":      "Check-in",
		"pass_score": 50,
		"questions": []fiber.Map{
			{
				"question_text":  "How many counts in box breathing?",
				"option_a":       "2",
				"option_b":       "4",
				"option_c":       "6",
				"option_d":       "8",
				"correct_option": "B",
			},
		},
	})
	require.Equal(t, fiber.StatusCreated, status)

	quizID := uint(parsed["data"].(map[string]interface{})["ID"].(float64))
	var questionCount int64
	env.db.Model(&models.QuizQuestion{}).Where("quiz_id = ?", quizID).Count(&questionCount)
	assert.Equal(t, int64(1), questionCount)

	status, _ = env.adminRequest(t, "POST", fmt.Sprintf("/admin/course/%d/publish", courseID), adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	resp, listing = env.request(t, "GET", "/course/list", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), listing["data"].(map[string]interface{})["total"])

	status, _ = env.adminRequest(t, "POST", fmt.Sprintf("/admin/course/%d/archive", courseID), adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	resp, listing = env.request(t, "GET", "/course/list", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), listing["data"].(map[string]interface{})["total"])
}

func TestAuthoringRequiresAdminRole(t *testing.T) {
	env, _ := setupAdminCourseTest(t)

	// the regular student token from the base env
	resp, _ := env.request(t, "POST", "/admin/course/", fiber.Map{
		"title": "Not allowed",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDashboardCounts(t *testing.T) {
	env, adminToken := setupAdminCourseTest(t)
	env.seedCourse(t)

	status, parsed := env.adminRequest(t, "GET", "/admin/course/dashboard", adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	data := parsed["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["courses"])
	assert.Equal(t, float64(0), data["enrollments"])
}
