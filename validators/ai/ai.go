package aiValidator

import (
	"aimwell/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// HealthPlanRequest is the validated health plan generation payload
type HealthPlanRequest struct {
	UserID   uint   `json:"user_id" validate:"required"`
	PlanType string `json:"plan_type" validate:"required,oneof=FITNESS NUTRITION MENTAL_HEALTH PREVENTIVE"`
	Age      int    `json:"age" validate:"required,min=13,max=120"`
	WeightKg int    `json:"weight_kg" validate:"omitempty,min=20,max=400"`
	HeightCm int    `json:"height_cm" validate:"omitempty,min=90,max=260"`
	Goal     string `json:"goal" validate:"required,max=500"`
	Notes    string `json:"notes" validate:"max=2000"`
}

// HealthPlan validates the health plan request schema
func HealthPlan() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(HealthPlanRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fe := range err.(validator.ValidationErrors) {
				errors[fe.Field()] = "Invalid value for " + fe.Field() + "!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedHealthPlan", reqData)
		return c.Next()
	}
}

// ChatRequest is the validated chat relay payload
type ChatRequest struct {
	Messages []struct {
		Role    string `json:"role" validate:"required,oneof=system user assistant"`
		Content string `json:"content" validate:"required,max=8000"`
	} `json:"messages" validate:"required,min=1,dive"`
}

// Chat validates the chat relay request schema
func Chat() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ChatRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fe := range err.(validator.ValidationErrors) {
				errors[fe.Field()] = "Invalid value for " + fe.Field() + "!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedChat", reqData)
		return c.Next()
	}
}

// SummarizeRequest is the validated summarizer payload
type SummarizeRequest struct {
	Text string `json:"text" validate:"required,min=20,max=20000"`
}

// Summarize validates the summarizer request schema
func Summarize() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SummarizeRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fe := range err.(validator.ValidationErrors) {
				errors[fe.Field()] = "Invalid value for " + fe.Field() + "!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSummarize", reqData)
		return c.Next()
	}
}
