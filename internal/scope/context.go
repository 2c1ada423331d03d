package scope

import (
	"errors"

	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	localsUser      = "auth_user"
	localsPatientID = "patient_id"
)

// GetUserID extracts the user UUID from JWT claims in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

// SetCurrentUser stores the loaded identity for downstream handlers.
func SetCurrentUser(c *fiber.Ctx, user *models.User) {
	c.Locals(localsUser, user)
}

// CurrentUser returns the identity loaded by the scope middleware.
func CurrentUser(c *fiber.Ctx) *models.User {
	if u, ok := c.Locals(localsUser).(*models.User); ok {
		return u
	}
	return nil
}

// SetPatientID stores the resolved effective patient partition.
func SetPatientID(c *fiber.Ctx, id uuid.UUID) {
	c.Locals(localsPatientID, id)
}

// PatientID returns the effective patient partition resolved for this request.
func PatientID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals(localsPatientID).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
