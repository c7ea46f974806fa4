package aiController

import (
	"encoding/json"
	"fmt"
	"log"

	"aimwell/middleware"
	"aimwell/models"
	"aimwell/utils"
	aiValidator "aimwell/validators/ai"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AIController relays prompts to the hosted LLM gateway: structured health
// plans are stored, chat and summaries return raw text.
type AIController struct {
	Db *gorm.DB
	AI *utils.AIClient
}

func NewAIController(db *gorm.DB, ai *utils.AIClient) *AIController {
	return &AIController{Db: db, AI: ai}
}

// GenerateHealthPlan builds a plan prompt, relays it upstream and stores
// the response. The body's user id must match the authenticated caller.
func (ai *AIController) GenerateHealthPlan(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedHealthPlan").(*aiValidator.HealthPlanRequest)
	if reqData.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Cannot generate a plan for another user!", nil)
	}

	prompt := buildPlanPrompt(reqData)
	messages := []utils.ChatMessage{
		{Role: "system", Content: "You are a health planning assistant. Respond ONLY with a JSON object matching the requested schema, no prose."},
		{Role: "user", Content: prompt},
	}

	response, err := ai.AI.ChatCompletion(messages, 0.4, 1200)
	if err != nil {
		log.Printf("Health plan generation failed for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate plan. Please try again.", nil)
	}

	// Store valid JSON as-is; wrap anything else as a raw-text fallback
	var content datatypes.JSON
	if json.Valid([]byte(response)) {
		content = datatypes.JSON(response)
	} else {
		content = models.WrapRawPlan(response)
	}

	plan := models.HealthPlan{
		UserID:    userID,
		PlanType:  reqData.PlanType,
		Content:   content,
		Generated: true,
	}
	if err := ai.Db.Create(&plan).Error; err != nil {
		log.Printf("Failed to store health plan for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store plan!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Plan generated successfully!", plan)
}

// GetHealthPlans lists the caller's stored plans
func (ai *AIController) GetHealthPlans(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var plans []models.HealthPlan
	if err := ai.Db.Where("user_id = ? AND is_deleted = false", userID).Order("created_at desc").Find(&plans).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch plans!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plans fetched successfully!", fiber.Map{
		"plans": plans,
		"total": len(plans),
	})
}

// Chat relays a conversation to the gateway and returns the raw reply
func (ai *AIController) Chat(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedChat").(*aiValidator.ChatRequest)

	messages := make([]utils.ChatMessage, 0, len(reqData.Messages)+1)
	messages = append(messages, utils.ChatMessage{Role: "system", Content: "You are Aimwell, a friendly wellness and learning assistant."})
	for _, m := range reqData.Messages {
		messages = append(messages, utils.ChatMessage{Role: m.Role, Content: m.Content})
	}

	response, err := ai.AI.ChatCompletion(messages, 0.7, 800)
	if err != nil {
		log.Printf("Chat relay failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Chat is unavailable. Please try again.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reply generated!", fiber.Map{
		"reply": response,
	})
}

// Summarize relays a text for summarization and returns the raw summary
func (ai *AIController) Summarize(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedSummarize").(*aiValidator.SummarizeRequest)

	messages := []utils.ChatMessage{
		{Role: "system", Content: "Summarize the user's text in a short paragraph followed by key bullet points."},
		{Role: "user", Content: reqData.Text},
	}

	response, err := ai.AI.ChatCompletion(messages, 0.3, 500)
	if err != nil {
		log.Printf("Summarization failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Summarizer is unavailable. Please try again.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Summary generated!", fiber.Map{
		"summary": response,
	})
}

func buildPlanPrompt(req *aiValidator.HealthPlanRequest) string {
	schema := map[string]string{
		models.PlanTypeFitness:    `{"goal": string, "weeks": number, "workouts": [string], "notes": string}`,
		models.PlanTypeNutrition:  `{"daily_calories": number, "meals": [string], "restrictions": [string], "notes": string}`,
		models.PlanTypeMental:     `{"focus": string, "practices": [string], "check_ins": [string], "notes": string}`,
		models.PlanTypePreventive: `{"screenings": [string], "frequency": string, "notes": string}`,
	}[req.PlanType]

	return fmt.Sprintf(
		"Create a %s plan as JSON with schema %s. Profile: age %d, weight %dkg, height %dcm. Goal: %s. Notes: %s",
		req.PlanType, schema, req.Age, req.WeightKg, req.HeightCm, req.Goal, req.Notes,
	)
}
