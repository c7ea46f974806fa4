package courseValidator

import (
	"aimwell/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CourseID validates the :id route param
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}
		c.Locals("courseID", id)
		return c.Next()
	}
}

// LessonComplete validates the lesson completion route params
func LessonComplete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := c.ParamsInt("course_id")
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}
		lessonID, err := c.ParamsInt("lesson_id")
		if err != nil || lessonID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
		}
		c.Locals("courseID", courseID)
		c.Locals("lessonID", lessonID)
		return c.Next()
	}
}

// QuizSubmission is the validated quiz answers payload
type QuizSubmission struct {
	Answers map[uint]string `json:"answers"` // questionID -> "A".."D"
}

// SubmitQuiz validates a quiz submission
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := c.ParamsInt("course_id")
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}
		quizID, err := c.ParamsInt("quiz_id")
		if err != nil || quizID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
		}

		reqData := new(QuizSubmission)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if len(reqData.Answers) == 0 {
			errors["answers"] = "At least one answer is required!"
		}
		for _, choice := range reqData.Answers {
			if choice != "A" && choice != "B" && choice != "C" && choice != "D" {
				errors["answers"] = "Answers must be one of A, B, C or D!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("quizID", quizID)
		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

// CreateCourseRequest is the validated admin course payload
type CreateCourseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Category    string `json:"category"`
	Duration    int64  `json:"duration"`
	IsPremium   bool   `json:"is_premium"`
}

// CreateCourse validates the admin course creation payload
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Duration < 0 {
			errors["duration"] = "Duration cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// CreateLessonRequest is the validated admin lesson payload
type CreateLessonRequest struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	VideoURL   string `json:"video_url"`
	OrderIndex int    `json:"order_index"`
}

// CreateLesson validates the admin lesson creation payload
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := c.ParamsInt("id")
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}

		reqData := new(CreateLessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// CreateQuizRequest is the validated admin quiz payload
type CreateQuizRequest struct {
	Title     string `json:"title"`
	PassScore int    `json:"pass_score"`
	Questions []struct {
		QuestionText  string `json:"question_text"`
		OptionA       string `json:"option_a"`
		OptionB       string `json:"option_b"`
		OptionC       string `json:"option_c"`
		OptionD       string `json:"option_d"`
		CorrectOption string `json:"correct_option"`
	} `json:"questions"`
}

// CreateQuiz validates the admin quiz creation payload
func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonID, err := c.ParamsInt("lesson_id")
		if err != nil || lessonID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
		}

		reqData := new(CreateQuizRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if len(reqData.Questions) == 0 {
			errors["questions"] = "At least one question is required!"
		}
		if reqData.PassScore < 0 || reqData.PassScore > 100 {
			errors["pass_score"] = "Pass score must be between 0 and 100!"
		}
		for _, q := range reqData.Questions {
			if q.CorrectOption != "A" && q.CorrectOption != "B" && q.CorrectOption != "C" && q.CorrectOption != "D" {
				errors["questions"] = "Each question needs a correct option of A, B, C or D!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("lessonID", lessonID)
		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}
