package handlers

import (
	"errors"

	"github.com/carelinkhq/carelink-backend/internal/dto"
	"github.com/carelinkhq/carelink-backend/internal/scope"
	"github.com/carelinkhq/carelink-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type FollowUpHandler struct {
	followUpService *services.FollowUpService
}

func NewFollowUpHandler(followUpService *services.FollowUpService) *FollowUpHandler {
	return &FollowUpHandler{followUpService: followUpService}
}

func (h *FollowUpHandler) List(c *fiber.Ctx) error {
	patientID := scope.PatientID(c)

	followUps, err := h.followUpService.List(patientID, c.Query("status"))
	if err != nil {
		return internalError(c, "Failed to fetch follow-ups")
	}
	return c.JSON(fiber.Map{"data": followUps, "count": len(followUps)})
}

func (h *FollowUpHandler) Create(c *fiber.Ctx) error {
	patientID := scope.PatientID(c)

	var req dto.CreateFollowUpRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if problems := req.Validate(); len(problems) > 0 {
		return validationError(c, problems)
	}

	followUp, err := h.followUpService.Create(patientID, &req)
	if err != nil {
		return internalError(c, "Failed to create follow-up")
	}
	return c.Status(fiber.StatusCreated).JSON(followUp)
}

func (h *FollowUpHandler) Update(c *fiber.Ctx) error {
	patientID := scope.PatientID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid follow-up id")
	}

	var req dto.UpdateFollowUpRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if problems := req.Validate(); len(problems) > 0 {
		return validationError(c, problems)
	}

	followUp, err := h.followUpService.Update(patientID, id, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return notFound(c, "Follow-up not found")
		}
		return internalError(c, "Failed to update follow-up")
	}
	return c.JSON(followUp)
}

func (h *FollowUpHandler) Delete(c *fiber.Ctx) error {
	patientID := scope.PatientID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid follow-up id")
	}

	if err := h.followUpService.Delete(patientID, id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return notFound(c, "Follow-up not found")
		}
		return internalError(c, "Failed to delete follow-up")
	}
	return c.JSON(fiber.Map{"message": "Follow-up deleted"})
}
