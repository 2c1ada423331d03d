package scope

import (
	"errors"

	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrNotLinked means a caregiver has not redeemed a patient access code yet.
	ErrNotLinked = errors.New("caregiver not linked to any patient")
	// ErrForbidden means the role cannot resolve to a patient data partition.
	ErrForbidden = errors.New("role is not authorized to access patient data")
)

// Resolve maps an authenticated identity to the single patient partition it
// may touch. Patients see their own data; caregivers see exactly the patient
// they are linked to. An unlinked caregiver is a hard failure, never a
// default partition.
func Resolve(role string, userID uuid.UUID, linkedPatientID *uuid.UUID) (uuid.UUID, error) {
	switch role {
	case models.RolePatient:
		return userID, nil
	case models.RoleCaregiver:
		if linkedPatientID == nil {
			return uuid.Nil, ErrNotLinked
		}
		return *linkedPatientID, nil
	default:
		return uuid.Nil, ErrForbidden
	}
}

// ForPatient returns a GORM scope that filters by patient_id. Every domain
// query goes through this; there is no per-record ACL.
func ForPatient(patientID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("patient_id = ?", patientID)
	}
}
