package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var MedicationFrequencies = []string{
	"once_daily", "twice_daily", "thrice_daily", "weekly", "as_needed",
}

// TakenEntry is one row of a medication's taken log.
type TakenEntry struct {
	Date  time.Time `json:"date"`
	Time  string    `json:"time"`
	Taken bool      `json:"taken"`
}

type Medication struct {
	ID           uuid.UUID                          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PatientID    uuid.UUID                          `gorm:"type:uuid;not null;index" json:"patient_id"`
	Name         string                             `gorm:"size:100;not null" json:"name"`
	Dosage       string                             `gorm:"size:50;not null" json:"dosage"`
	Frequency    string                             `gorm:"size:20;not null" json:"frequency"`
	Times        datatypes.JSONSlice[string]        `gorm:"type:jsonb" json:"times"`
	Active       bool                               `gorm:"default:true" json:"active"`
	StartDate    time.Time                          `json:"start_date"`
	EndDate      *time.Time                         `json:"end_date,omitempty"`
	Instructions string                             `gorm:"type:text" json:"instructions,omitempty"`
	TakenLog     datatypes.JSONSlice[TakenEntry]    `gorm:"type:jsonb" json:"taken_log"`
	CreatedAt    time.Time                          `json:"created_at"`
	UpdatedAt    time.Time                          `json:"updated_at"`
	DeletedAt    gorm.DeletedAt                     `gorm:"index" json:"-"`
}
