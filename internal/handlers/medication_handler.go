package handlers

import (
	"errors"

	"github.com/carelinkhq/carelink-backend/internal/dto"
	"github.com/carelinkhq/carelink-backend/internal/scope"
	"github.com/carelinkhq/carelink-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MedicationHandler struct {
	medicationService *services.MedicationService
}

func NewMedicationHandler(medicationService *services.MedicationService) *MedicationHandler {
	return &MedicationHandler{medicationService: medicationService}
}

func (h *MedicationHandler) List(c *fiber.Ctx) error {
	patientID := scope.PatientID(c)
	activeOnly := c.QueryBool("active", false)

	medications, err := h.medicationService.List(patientID, activeOnly)
	if err != nil {
		return internalError(c, "Failed to fetch medications")
	}
	return c.JSON(fiber.Map{"data": medications, "count": len(medications)})
}

func (h *MedicationHandler) Create(c *fiber.Ctx) error {
	patientID := scope.PatientID(c)

	var req dto.CreateMedicationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if problems := req.Validate(); len(problems) > 0 {
		return validationError(c, problems)
	}

	medication, err := h.medicationService.Create(patientID, &req)
	if err != nil {
		return internalError(c, "Failed to create medication")
	}
	return c.Status(fiber.StatusCreated).JSON(medication)
}

func (h *MedicationHandler) Update(c *fiber.Ctx) error {
	patientID := scope.PatientID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid medication id")
	}

	var req dto.UpdateMedicationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if problems := req.Validate(); len(problems) > 0 {
		return validationError(c, problems)
	}

	medication, err := h.medicationService.Update(patientID, id, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return notFound(c, "Medication not found")
		}
		return internalError(c, "Failed to update medication")
	}
	return c.JSON(medication)
}

func (h *MedicationHandler) Delete(c *fiber.Ctx) error {
	patientID := scope.PatientID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid medication id")
	}

	if err := h.medicationService.Delete(patientID, id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return notFound(c, "Medication not found")
		}
		return internalError(c, "Failed to delete medication")
	}
	return c.JSON(fiber.Map{"message": "Medication deleted"})
}

// MarkTaken handles POST /medications/:id/taken.
func (h *MedicationHandler) MarkTaken(c *fiber.Ctx) error {
	patientID := scope.PatientID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid medication id")
	}

	var req dto.MarkTakenRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Time == "" {
		return validationError(c, map[string]string{"time": "intake time is required"})
	}

	medication, err := h.medicationService.MarkTaken(patientID, id, req.Time)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return notFound(c, "Medication not found")
		}
		return internalError(c, "Failed to record intake")
	}
	return c.JSON(medication)
}
