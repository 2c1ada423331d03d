package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RolePatient   = "patient"
	RoleCaregiver = "caregiver"
	RoleAdmin     = "admin"
)

// User covers all three roles. Patients carry an access code that caregivers
// redeem to link; caregivers carry the resulting LinkedPatientID. The refresh
// token is stored as a sha256 hash and overwritten on every rotation, so at
// most one refresh token per user is ever valid.
type User struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name             string         `gorm:"size:100;not null" json:"name"`
	Email            string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone            string         `gorm:"size:30" json:"phone,omitempty"`
	Password         string         `gorm:"not null" json:"-"`
	Role             string         `gorm:"size:20;not null;default:'patient'" json:"role"`
	LinkedPatientID  *uuid.UUID     `gorm:"type:uuid;index" json:"linked_patient_id,omitempty"`
	AccessCode       *string        `gorm:"size:6;uniqueIndex" json:"-"`
	Language         string         `gorm:"size:10;default:'en'" json:"language"`
	ExpoPushToken    *string        `gorm:"size:255" json:"-"`
	RefreshTokenHash string         `gorm:"size:64" json:"-"`
	IsActive         bool           `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
