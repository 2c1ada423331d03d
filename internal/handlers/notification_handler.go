package handlers

import (
	"github.com/carelinkhq/carelink-backend/internal/dto"
	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/carelinkhq/carelink-backend/internal/notify"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type NotificationHandler struct {
	db       *gorm.DB
	notifier notify.Notifier
}

func NewNotificationHandler(db *gorm.DB, notifier notify.Notifier) *NotificationHandler {
	return &NotificationHandler{db: db, notifier: notifier}
}

// Send pushes a notification to one user's registered device token.
func (h *NotificationHandler) Send(c *fiber.Ctx) error {
	var req dto.SendNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", req.UserID).Error; err != nil || user.ExpoPushToken == nil {
		return notFound(c, "User not found or no push token registered")
	}

	if err := h.notifier.Send(*user.ExpoPushToken, req.Title, req.Body, req.Data); err != nil {
		return internalError(c, "Failed to send notification")
	}
	return c.JSON(fiber.Map{"message": "Notification sent"})
}

// Reminder pushes a typed reminder to a patient.
func (h *NotificationHandler) Reminder(c *fiber.Ctx) error {
	var req dto.SendReminderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var patient models.User
	if err := h.db.First(&patient, "id = ?", req.PatientID).Error; err != nil || patient.ExpoPushToken == nil {
		return notFound(c, "Patient or push token not found")
	}

	title := req.Title
	if title == "" {
		title = req.Type + " Reminder"
	}
	body := req.Body
	if body == "" {
		body = "You have an upcoming " + req.Type
	}

	if err := h.notifier.Send(*patient.ExpoPushToken, title, body, map[string]string{"type": req.Type}); err != nil {
		return internalError(c, "Failed to send reminder")
	}
	return c.JSON(fiber.Map{"message": "Reminder sent"})
}
