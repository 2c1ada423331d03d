package handlers

import (
	"time"

	"github.com/carelinkhq/carelink-backend/internal/dto"
	"github.com/carelinkhq/carelink-backend/internal/scope"
	"github.com/carelinkhq/carelink-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SymptomHandler struct {
	symptomService *services.SymptomService
}

func NewSymptomHandler(symptomService *services.SymptomService) *SymptomHandler {
	return &SymptomHandler{symptomService: symptomService}
}

func (h *SymptomHandler) List(c *fiber.Ctx) error {
	patientID := scope.PatientID(c)

	var start, end *time.Time
	if s := c.Query("start_date"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			start = &t
		}
	}
	if e := c.Query("end_date"); e != "" {
		if t, err := time.Parse(time.RFC3339, e); err == nil {
			end = &t
		}
	}
	limit := c.QueryInt("limit", 30)

	logs, err := h.symptomService.List(patientID, start, end, limit)
	if err != nil {
		return internalError(c, "Failed to fetch symptom logs")
	}
	return c.JSON(fiber.Map{"data": logs, "count": len(logs)})
}

func (h *SymptomHandler) Create(c *fiber.Ctx) error {
	patientID := scope.PatientID(c)

	var req dto.CreateSymptomLogRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if problems := req.Validate(); len(problems) > 0 {
		return validationError(c, problems)
	}

	log, err := h.symptomService.Create(patientID, &req)
	if err != nil {
		return internalError(c, "Failed to create symptom log")
	}
	return c.Status(fiber.StatusCreated).JSON(log)
}

// BulkCreate is the offline-queue flush target. Responses are per-item so
// clients can drop exactly the entries the server accepted.
func (h *SymptomHandler) BulkCreate(c *fiber.Ctx) error {
	patientID := scope.PatientID(c)

	var req dto.BulkSymptomLogRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if problems := req.Validate(); len(problems) > 0 {
		return validationError(c, problems)
	}

	resp, err := h.symptomService.BulkCreate(patientID, &req)
	if err != nil {
		return internalError(c, "Failed to sync symptom logs")
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
