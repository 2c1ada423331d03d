package handlers

import (
	"errors"

	"github.com/carelinkhq/carelink-backend/internal/dto"
	"github.com/carelinkhq/carelink-backend/internal/scope"
	"github.com/carelinkhq/carelink-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	appointmentService *services.AppointmentService
}

func NewAppointmentHandler(appointmentService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	patientID := scope.PatientID(c)

	status := c.Query("status")
	descending := c.Query("sort") == "desc"

	appointments, err := h.appointmentService.List(patientID, status, descending)
	if err != nil {
		return internalError(c, "Failed to fetch appointments")
	}
	return c.JSON(fiber.Map{"data": appointments, "count": len(appointments)})
}

func (h *AppointmentHandler) Get(c *fiber.Ctx) error {
	patientID := scope.PatientID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid appointment id")
	}

	appointment, err := h.appointmentService.Get(patientID, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return notFound(c, "Appointment not found")
		}
		return internalError(c, "Failed to fetch appointment")
	}
	return c.JSON(appointment)
}

func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	patientID := scope.PatientID(c)

	var req dto.CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if problems := req.Validate(); len(problems) > 0 {
		return validationError(c, problems)
	}

	appointment, err := h.appointmentService.Create(patientID, &req)
	if err != nil {
		return internalError(c, "Failed to create appointment")
	}
	return c.Status(fiber.StatusCreated).JSON(appointment)
}

func (h *AppointmentHandler) Update(c *fiber.Ctx) error {
	patientID := scope.PatientID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid appointment id")
	}

	var req dto.UpdateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if problems := req.Validate(); len(problems) > 0 {
		return validationError(c, problems)
	}

	appointment, err := h.appointmentService.Update(patientID, id, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return notFound(c, "Appointment not found")
		}
		return internalError(c, "Failed to update appointment")
	}
	return c.JSON(appointment)
}

func (h *AppointmentHandler) Delete(c *fiber.Ctx) error {
	patientID := scope.PatientID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid appointment id")
	}

	if err := h.appointmentService.Delete(patientID, id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return notFound(c, "Appointment not found")
		}
		return internalError(c, "Failed to delete appointment")
	}
	return c.JSON(fiber.Map{"message": "Appointment deleted"})
}
