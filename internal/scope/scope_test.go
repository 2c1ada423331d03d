package scope_test

import (
	"testing"

	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/carelinkhq/carelink-backend/internal/scope"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestResolve_PatientSeesOwnPartition(t *testing.T) {
	id := uuid.New()

	got, err := scope.Resolve(models.RolePatient, id, nil)
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestResolve_LinkedCaregiverSeesLinkedPatient(t *testing.T) {
	caregiver := uuid.New()
	patient := uuid.New()

	got, err := scope.Resolve(models.RoleCaregiver, caregiver, &patient)
	require.NoError(t, err)
	require.Equal(t, patient, got)
}

func TestResolve_UnlinkedCaregiverFailsHard(t *testing.T) {
	got, err := scope.Resolve(models.RoleCaregiver, uuid.New(), nil)
	require.ErrorIs(t, err, scope.ErrNotLinked)
	require.Equal(t, uuid.Nil, got)
}

func TestResolve_UnknownRoleForbidden(t *testing.T) {
	for _, role := range []string{models.RoleAdmin, "", "nurse"} {
		got, err := scope.Resolve(role, uuid.New(), nil)
		require.ErrorIs(t, err, scope.ErrForbidden, "role %q", role)
		require.Equal(t, uuid.Nil, got)
	}
}
