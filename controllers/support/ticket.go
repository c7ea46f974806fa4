package supportController

import (
	"aimwell/middleware"
	"aimwell/models"
	supportValidator "aimwell/validators/support"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SupportController handles user support tickets
type SupportController struct {
	Db *gorm.DB
}

func NewSupportController(db *gorm.DB) *SupportController {
	return &SupportController{Db: db}
}

// CreateTicket opens a support ticket
func (sc *SupportController) CreateTicket(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedTicket").(*supportValidator.CreateTicketRequest)

	ticket := models.SupportTicket{
		UserID:      userID,
		Title:       reqData.Title,
		Description: reqData.Description,
		Priority:    reqData.Priority,
		Category:    reqData.Category,
		Status:      "OPEN",
	}
	if ticket.Priority == "" {
		ticket.Priority = "MEDIUM"
	}
	if ticket.Category == "" {
		ticket.Category = "GENERAL"
	}

	if err := sc.Db.Create(&ticket).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create ticket!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Ticket created successfully!", ticket)
}

// GetUserTickets lists the caller's tickets
func (sc *SupportController) GetUserTickets(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var tickets []models.SupportTicket
	if err := sc.Db.Where("user_id = ? AND is_deleted = false", userID).Order("created_at desc").Find(&tickets).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tickets!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tickets fetched successfully!", fiber.Map{
		"tickets": tickets,
		"total":   len(tickets),
	})
}

// ListOpenTickets lists all non-closed tickets (admin only)
func (sc *SupportController) ListOpenTickets(c *fiber.Ctx) error {
	var tickets []models.SupportTicket
	if err := sc.Db.Where("status != ? AND is_deleted = false", "CLOSED").Order("created_at asc").Find(&tickets).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tickets!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tickets fetched successfully!", fiber.Map{
		"tickets": tickets,
		"total":   len(tickets),
	})
}

// RespondTicket records an admin response on a ticket
func (sc *SupportController) RespondTicket(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	ticketID := c.Locals("ticketID").(int)
	reqData := c.Locals("validatedResponse").(*supportValidator.RespondRequest)

	var ticket models.SupportTicket
	if err := sc.Db.Where("id = ? AND is_deleted = false", ticketID).First(&ticket).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
	}

	status := "RESPONDED"
	if reqData.Close {
		status = "CLOSED"
	}

	if err := sc.Db.Model(&ticket).Updates(map[string]interface{}{
		"response":     reqData.Response,
		"responded_by": adminID,
		"status":       status,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update ticket!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket updated successfully!", nil)
}
