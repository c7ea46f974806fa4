package courseRoutes

import (
	courseController "aimwell/controllers/course"
	"aimwell/middleware"
	"aimwell/models"
	courseValidator "aimwell/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the student-facing course routes
func SetupCourseRoutes(app *fiber.App, cc *courseController.CourseController) {
	courseGroup := app.Group("/course")

	courseGroup.Get("/list", middleware.JWTMiddleware, cc.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, courseValidator.CourseID(), cc.GetCourseDetails)
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, courseValidator.CourseID(), cc.EnrollInCourse)
	courseGroup.Post("/:course_id/lesson/:lesson_id/complete", middleware.JWTMiddleware, courseValidator.LessonComplete(), cc.MarkLessonComplete)
	courseGroup.Post("/:course_id/quiz/:quiz_id/submit", middleware.JWTMiddleware, courseValidator.SubmitQuiz(), cc.SubmitQuiz)
	courseGroup.Get("/:id/progress", middleware.JWTMiddleware, courseValidator.CourseID(), cc.GetUserProgress)

	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, cc.GetUserEnrollments)
}

// SetupAdminCourseRoutes sets up the role-gated authoring routes
func SetupAdminCourseRoutes(app *fiber.App, ac *courseController.AdminCourseController, roles middleware.RoleChecker) {
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.RequireRole(roles, models.RoleAdmin))

	adminGroup.Post("/", courseValidator.CreateCourse(), ac.CreateCourse)
	adminGroup.Post("/:id/publish", courseValidator.CourseID(), ac.PublishCourse)
	adminGroup.Post("/:id/archive", courseValidator.CourseID(), ac.ArchiveCourse)
	adminGroup.Post("/:id/lesson", courseValidator.CreateLesson(), ac.AddLesson)
	adminGroup.Post("/lesson/:lesson_id/quiz", courseValidator.CreateQuiz(), ac.AddQuiz)
	adminGroup.Get("/dashboard", ac.GetDashboard)
}
