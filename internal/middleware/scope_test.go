package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carelinkhq/carelink-backend/internal/dto"
	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/carelinkhq/carelink-backend/internal/scope"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// scopedApp mounts RequireScope behind a stub that injects the given identity,
// the way LoadUser would after a verified token.
func scopedApp(user *models.User, reached *bool) *fiber.App {
	app := fiber.New()
	app.Get("/appointments",
		func(c *fiber.Ctx) error {
			scope.SetCurrentUser(c, user)
			return c.Next()
		},
		RequireScope(),
		func(c *fiber.Ctx) error {
			*reached = true
			return c.JSON(fiber.Map{"patient_id": scope.PatientID(c)})
		},
	)
	return app
}

func getScoped(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/appointments", nil))
	require.NoError(t, err)
	return resp
}

func TestRequireScopeRejectsUnlinkedCaregiver(t *testing.T) {
	var reached bool
	caregiver := &models.User{ID: uuid.New(), Role: models.RoleCaregiver}
	app := scopedApp(caregiver, &reached)

	resp := getScoped(t, app)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Error)
	require.Equal(t, "Caregiver not linked to any patient", body.Message)

	require.False(t, reached, "scoped handler must not run without a partition")
}

func TestRequireScopeResolvesLinkedCaregiver(t *testing.T) {
	var reached bool
	patientID := uuid.New()
	caregiver := &models.User{ID: uuid.New(), Role: models.RoleCaregiver, LinkedPatientID: &patientID}
	app := scopedApp(caregiver, &reached)

	resp := getScoped(t, app)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, reached)

	var body struct {
		PatientID uuid.UUID `json:"patient_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, patientID, body.PatientID)
}

func TestRequireScopeResolvesPatientToSelf(t *testing.T) {
	var reached bool
	patient := &models.User{ID: uuid.New(), Role: models.RolePatient}
	app := scopedApp(patient, &reached)

	resp := getScoped(t, app)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, reached)

	var body struct {
		PatientID uuid.UUID `json:"patient_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, patient.ID, body.PatientID)
}

func TestRequireScopeRejectsRoleWithoutPartition(t *testing.T) {
	var reached bool
	admin := &models.User{ID: uuid.New(), Role: models.RoleAdmin}
	app := scopedApp(admin, &reached)

	resp := getScoped(t, app)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.False(t, reached)
}

func TestRequireScopeRejectsMissingIdentity(t *testing.T) {
	var reached bool
	app := fiber.New()
	app.Get("/appointments", RequireScope(), func(c *fiber.Ctx) error {
		reached = true
		return c.SendStatus(fiber.StatusOK)
	})

	resp := getScoped(t, app)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.False(t, reached)
}
