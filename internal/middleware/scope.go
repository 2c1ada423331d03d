package middleware

import (
	"errors"

	"github.com/carelinkhq/carelink-backend/internal/dto"
	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/carelinkhq/carelink-backend/internal/scope"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LoadUser reads the authenticated identity from the database and stores it
// in context. The DB copy is authoritative: linking and deactivation take
// effect on the next request, not the next token.
func LoadUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := scope.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ? AND is_active = true", userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found or deactivated",
			})
		}

		scope.SetCurrentUser(c, &user)
		return c.Next()
	}
}

// RequireScope resolves the effective patient partition for the request and
// rejects identities that cannot resolve one. Runs after LoadUser.
func RequireScope() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := scope.CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		patientID, err := scope.Resolve(user.Role, user.ID, user.LinkedPatientID)
		if err != nil {
			if errors.Is(err, scope.ErrNotLinked) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Error: true, Message: "Caregiver not linked to any patient",
				})
			}
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Forbidden",
			})
		}

		scope.SetPatientID(c, patientID)
		return c.Next()
	}
}

// RequireRole restricts a route to the given roles. Runs after LoadUser.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := scope.CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Role '" + user.Role + "' is not authorized to access this route",
		})
	}
}
