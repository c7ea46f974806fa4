package courseController

import (
	"aimwell/middleware"
	"aimwell/models"
	courseValidator "aimwell/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminCourseController handles the role-gated course authoring surface
type AdminCourseController struct {
	Db *gorm.DB
}

func NewAdminCourseController(db *gorm.DB) *AdminCourseController {
	return &AdminCourseController{Db: db}
}

// CreateCourse creates a DRAFT course
func (ac *AdminCourseController) CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)

	course := models.Course{
		Title:       reqData.Title,
		Description: reqData.Description,
		Author:      reqData.Author,
		Category:    reqData.Category,
		Duration:    reqData.Duration,
		IsPremium:   reqData.IsPremium,
		Status:      "DRAFT",
		CreatedBy:   userID,
	}
	if course.Category == "" {
		course.Category = "GENERAL"
	}

	if err := ac.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// PublishCourse flips a course to ACTIVE
func (ac *AdminCourseController) PublishCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := ac.Db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := ac.Db.Model(&course).Update("status", "ACTIVE").Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// ArchiveCourse retires a course from the catalog
func (ac *AdminCourseController) ArchiveCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := ac.Db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := ac.Db.Model(&course).Update("status", "ARCHIVED").Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to archive course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course archived successfully!", nil)
}

// AddLesson appends a lesson to a course
func (ac *AdminCourseController) AddLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	reqData := c.Locals("validatedLesson").(*courseValidator.CreateLessonRequest)

	var course models.Course
	if err := ac.Db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	lesson := models.Lesson{
		CourseID:   uint(courseID),
		Title:      reqData.Title,
		Body:       reqData.Body,
		VideoURL:   reqData.VideoURL,
		OrderIndex: reqData.OrderIndex,
	}

	if err := ac.Db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// AddQuiz attaches a quiz with questions to a lesson
func (ac *AdminCourseController) AddQuiz(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)
	reqData := c.Locals("validatedQuiz").(*courseValidator.CreateQuizRequest)

	var lesson models.Lesson
	if err := ac.Db.Where("id = ? AND is_deleted = false", lessonID).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	quiz := models.Quiz{
		LessonID:  uint(lessonID),
		Title:     reqData.Title,
		PassScore: reqData.PassScore,
	}
	if quiz.PassScore == 0 {
		quiz.PassScore = 70
	}

	tx := ac.Db.Begin()
	if err := tx.Create(&quiz).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	for i, q := range reqData.Questions {
		question := models.QuizQuestion{
			QuizID:        quiz.ID,
			QuestionText:  q.QuestionText,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			OptionD:       q.OptionD,
			CorrectOption: q.CorrectOption,
			OrderIndex:    i,
		}
		if err := tx.Create(&question).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz questions!", nil)
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}

// GetDashboard returns admin counts for the education surface
func (ac *AdminCourseController) GetDashboard(c *fiber.Ctx) error {
	var courses, enrollments, completions, certificates int64
	ac.Db.Model(&models.Course{}).Where("is_deleted = false").Count(&courses)
	ac.Db.Model(&models.Enrollment{}).Where("is_deleted = false").Count(&enrollments)
	ac.Db.Model(&models.Enrollment{}).Where("status = ? AND is_deleted = false", "COMPLETED").Count(&completions)
	ac.Db.Model(&models.Certificate{}).Where("is_deleted = false").Count(&certificates)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"courses":      courses,
		"enrollments":  enrollments,
		"completions":  completions,
		"certificates": certificates,
	})
}
