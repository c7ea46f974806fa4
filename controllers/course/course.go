package courseController

import (
	"encoding/json"
	"log"
	"time"

	certificateController "aimwell/controllers/certificate"
	"aimwell/middleware"
	"aimwell/models"
	"aimwell/utils"
	courseValidator "aimwell/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CourseController handles the student-facing course surface: browsing,
// enrollment, lesson progress and quiz grading.
type CourseController struct {
	Db     *gorm.DB
	Mailer *utils.Mailer
}

func NewCourseController(db *gorm.DB, mailer *utils.Mailer) *CourseController {
	return &CourseController{Db: db, Mailer: mailer}
}

// GetAllCourses lists ACTIVE courses
func (cc *CourseController) GetAllCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := cc.Db.Where("status = ? AND is_deleted = false", "ACTIVE").Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"total":   len(courses),
	})
}

// GetCourseDetails returns a course with its lessons
func (cc *CourseController) GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := cc.Db.Where("id = ? AND status = ? AND is_deleted = false", courseID, "ACTIVE").First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
	}

	var lessons []models.Lesson
	cc.Db.Where("course_id = ? AND is_deleted = false", courseID).Order("order_index asc").Find(&lessons)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":  course,
		"lessons": lessons,
	})
}

// EnrollInCourse enrolls the user in an active course
func (cc *CourseController) EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := cc.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := cc.Db.Where("id = ? AND status = ? AND is_deleted = false", courseID, "ACTIVE").First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
	}

	// Premium courses require an active subscription
	if course.IsPremium {
		var sub models.Subscription
		if err := cc.Db.Where("user_id = ? AND status = ? AND is_deleted = false", userID, models.SubscriptionActive).First(&sub).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "An active subscription is required for premium courses!", nil)
		}
	}

	var existing models.Enrollment
	if err := cc.Db.Where("user_id = ? AND course_id = ? AND is_deleted = false", userID, courseID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
	}

	var totalLessons int64
	cc.Db.Model(&models.Lesson{}).Where("course_id = ? AND is_deleted = false", courseID).Count(&totalLessons)

	enrollment := models.Enrollment{
		UserID:       userID,
		CourseID:     uint(courseID),
		Status:       "ENROLLED",
		TotalLessons: int(totalLessons),
	}

	if err := cc.Db.Create(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	if cc.Mailer != nil {
		if err := cc.Mailer.SendEnrollmentEmail(user.Email, user.Name, course.Title); err != nil {
			log.Printf("Failed to send enrollment email to %s: %v", user.Email, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", enrollment)
}

// MarkLessonComplete records lesson completion and updates enrollment progress
func (cc *CourseController) MarkLessonComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	var enrollment models.Enrollment
	if err := cc.Db.Where("user_id = ? AND course_id = ? AND is_deleted = false", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var lesson models.Lesson
	if err := cc.Db.Where("id = ? AND course_id = ? AND is_deleted = false", lessonID, courseID).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var existing models.LessonProgress
	if err := cc.Db.Where("user_id = ? AND lesson_id = ? AND is_deleted = false", userID, lessonID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson already completed!", existing)
	}

	progress := models.LessonProgress{
		UserID:      userID,
		LessonID:    uint(lessonID),
		CourseID:    uint(courseID),
		CompletedAt: time.Now(),
	}
	if err := cc.Db.Create(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record progress!", nil)
	}

	cc.refreshEnrollment(&enrollment)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked complete!", fiber.Map{
		"progress":  enrollment.Progress,
		"status":    enrollment.Status,
		"lesson_id": lessonID,
		"course_id": courseID,
	})
}

// SubmitQuiz grades a quiz submission against the stored correct options
func (cc *CourseController) SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	quizID := c.Locals("quizID").(int)
	submission := c.Locals("validatedQuiz").(*courseValidator.QuizSubmission)

	var enrollment models.Enrollment
	if err := cc.Db.Where("user_id = ? AND course_id = ? AND is_deleted = false", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var quiz models.Quiz
	if err := cc.Db.Where("id = ? AND is_deleted = false", quizID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var questions []models.QuizQuestion
	if err := cc.Db.Where("quiz_id = ? AND is_deleted = false", quizID).Find(&questions).Error; err != nil || len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz has no questions!", nil)
	}

	correct := 0
	for _, q := range questions {
		if choice, ok := submission.Answers[q.ID]; ok && choice == q.CorrectOption {
			correct++
		}
	}
	score := correct * 100 / len(questions)
	passed := score >= quiz.PassScore

	var attemptCount int64
	cc.Db.Model(&models.QuizAttempt{}).Where("user_id = ? AND quiz_id = ?", userID, quizID).Count(&attemptCount)

	answersJSON, _ := json.Marshal(submission.Answers)
	attempt := models.QuizAttempt{
		UserID:        userID,
		QuizID:        uint(quizID),
		CourseID:      uint(courseID),
		Answers:       string(answersJSON),
		Score:         score,
		Passed:        passed,
		AttemptNumber: int(attemptCount) + 1,
	}
	if err := cc.Db.Create(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record attempt!", nil)
	}

	cc.refreshEnrollment(&enrollment)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz graded!", fiber.Map{
		"score":      score,
		"passed":     passed,
		"attempt":    attempt.AttemptNumber,
		"pass_score": quiz.PassScore,
	})
}

// GetUserProgress returns the caller's progress in a course
func (cc *CourseController) GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment models.Enrollment
	if err := cc.Db.Where("user_id = ? AND course_id = ? AND is_deleted = false", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not enrolled in this course!", nil)
	}

	var completed []models.LessonProgress
	cc.Db.Where("user_id = ? AND course_id = ? AND is_deleted = false", userID, courseID).Find(&completed)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":        enrollment,
		"completed_lessons": completed,
	})
}

// GetUserEnrollments lists the caller's enrollments with course info
func (cc *CourseController) GetUserEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	type EnrollmentWithCourse struct {
		models.Enrollment
		CourseName        string `json:"course_name"`
		CourseDescription string `json:"course_description"`
	}

	var enrollments []models.Enrollment
	if err := cc.Db.Where("user_id = ? AND is_deleted = false", userID).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	result := make([]EnrollmentWithCourse, len(enrollments))
	for i, e := range enrollments {
		var course models.Course
		cc.Db.Where("id = ?", e.CourseID).First(&course)
		result[i] = EnrollmentWithCourse{
			Enrollment:        e,
			CourseName:        course.Title,
			CourseDescription: course.Description,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}

// refreshEnrollment recomputes progress and flips the enrollment to
// COMPLETED when every lesson is done and every quiz passed; completion
// issues the certificate.
func (cc *CourseController) refreshEnrollment(enrollment *models.Enrollment) {
	var totalLessons, doneLessons int64
	cc.Db.Model(&models.Lesson{}).Where("course_id = ? AND is_deleted = false", enrollment.CourseID).Count(&totalLessons)
	cc.Db.Model(&models.LessonProgress{}).Where("user_id = ? AND course_id = ? AND is_deleted = false", enrollment.UserID, enrollment.CourseID).Count(&doneLessons)

	progress := float64(0)
	if totalLessons > 0 {
		progress = float64(doneLessons) * 100 / float64(totalLessons)
	}

	status := "IN_PROGRESS"
	if doneLessons == 0 {
		status = "ENROLLED"
	}

	quizzesPassed, avgScore := cc.quizStanding(enrollment.UserID, enrollment.CourseID)
	completed := totalLessons > 0 && doneLessons >= totalLessons && quizzesPassed

	updates := map[string]interface{}{
		"progress":          progress,
		"completed_lessons": doneLessons,
		"total_lessons":     totalLessons,
		"status":            status,
	}
	if completed {
		now := time.Now()
		updates["status"] = "COMPLETED"
		updates["completed_at"] = now
	}

	if err := cc.Db.Model(enrollment).Updates(updates).Error; err != nil {
		log.Printf("Failed to update enrollment %d: %v", enrollment.ID, err)
		return
	}
	enrollment.Progress = progress
	enrollment.Status = updates["status"].(string)

	if completed {
		var user models.User
		var course models.Course
		if err := cc.Db.Where("id = ?", enrollment.UserID).First(&user).Error; err != nil {
			return
		}
		if err := cc.Db.Where("id = ?", enrollment.CourseID).First(&course).Error; err != nil {
			return
		}
		if _, err := certificateController.IssueCertificate(cc.Db, cc.Mailer, user, course, avgScore); err != nil {
			log.Printf("Failed to issue certificate for user %d course %d: %v", user.ID, course.ID, err)
		}
	}
}

// quizStanding reports whether every quiz in the course has a passing
// attempt, and the average best score across quizzes. A course without
// quizzes counts as passed with a score of 100.
func (cc *CourseController) quizStanding(userID, courseID uint) (bool, int) {
	var lessonIDs []uint
	cc.Db.Model(&models.Lesson{}).Where("course_id = ? AND is_deleted = false", courseID).Pluck("id", &lessonIDs)

	var quizzes []models.Quiz
	if len(lessonIDs) > 0 {
		cc.Db.Where("lesson_id IN ? AND is_deleted = false", lessonIDs).Find(&quizzes)
	}
	if len(quizzes) == 0 {
		return true, 100
	}

	totalBest := 0
	for _, quiz := range quizzes {
		var best models.QuizAttempt
		err := cc.Db.Where("user_id = ? AND quiz_id = ? AND passed = true", userID, quiz.ID).
			Order("score desc").First(&best).Error
		if err != nil {
			return false, 0
		}
		totalBest += best.Score
	}
	return true, totalBest / len(quizzes)
}
