package handlers

import (
	"errors"

	"github.com/carelinkhq/carelink-backend/internal/dto"
	"github.com/carelinkhq/carelink-backend/internal/scope"
	"github.com/carelinkhq/carelink-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if problems := req.Validate(); len(problems) > 0 {
		return validationError(c, problems)
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c, "Failed to register")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c, "Failed to log in")
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	tokens, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingToken):
			return badRequest(c, err.Error())
		case errors.Is(err, services.ErrTokenExpired), errors.Is(err, services.ErrTokenInvalid):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c, "Failed to refresh token")
	}

	return c.JSON(tokens)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := scope.CurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}

	resp, err := h.authService.GetProfile(user.ID)
	if err != nil {
		return internalError(c, "Failed to load profile")
	}
	return c.JSON(resp)
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user := scope.CurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.UpdateProfile(user.ID, &req)
	if err != nil {
		return internalError(c, "Failed to update profile")
	}
	return c.JSON(resp)
}

func (h *AuthHandler) UpdatePushToken(c *fiber.Ctx) error {
	user := scope.CurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}

	var req dto.UpdatePushTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.authService.UpdatePushToken(user.ID, req.ExpoPushToken); err != nil {
		return internalError(c, "Failed to update push token")
	}
	return c.JSON(fiber.Map{"message": "Push token updated"})
}
