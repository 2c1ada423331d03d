package handlers

import (
	"errors"

	"github.com/carelinkhq/carelink-backend/internal/dto"
	"github.com/carelinkhq/carelink-backend/internal/scope"
	"github.com/carelinkhq/carelink-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CaregiverHandler struct {
	authService *services.AuthService
}

func NewCaregiverHandler(authService *services.AuthService) *CaregiverHandler {
	return &CaregiverHandler{authService: authService}
}

// Link redeems a patient access code for the calling caregiver.
func (h *CaregiverHandler) Link(c *fiber.Ctx) error {
	user := scope.CurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}

	var req dto.LinkRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.AccessCode == "" {
		return validationError(c, map[string]string{"access_code": "access code is required"})
	}

	patient, err := h.authService.Link(user, req.AccessCode)
	if err != nil {
		if errors.Is(err, scope.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Only caregivers can link to patients",
			})
		}
		if errors.Is(err, services.ErrNotFound) {
			return notFound(c, "Invalid access code. No patient found.")
		}
		return internalError(c, "Failed to link")
	}

	return c.JSON(dto.LinkResponse{
		PatientID:   patient.ID,
		PatientName: patient.Name,
	})
}

func (h *CaregiverHandler) LinkedPatient(c *fiber.Ctx) error {
	user := scope.CurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}

	patient, err := h.authService.GetLinkedPatient(user)
	if err != nil {
		return notFound(c, "No patient linked")
	}

	return c.JSON(dto.LinkedPatientResponse{
		ID:    patient.ID,
		Name:  patient.Name,
		Email: patient.Email,
		Phone: patient.Phone,
	})
}

// AccessCode returns the calling patient's linking code, generating it lazily.
func (h *CaregiverHandler) AccessCode(c *fiber.Ctx) error {
	user := scope.CurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}

	code, err := h.authService.EnsureAccessCode(user)
	if err != nil {
		return internalError(c, "Failed to generate access code")
	}

	return c.JSON(dto.AccessCodeResponse{AccessCode: code})
}
