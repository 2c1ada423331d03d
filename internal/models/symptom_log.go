package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var Moods = []string{"great", "good", "okay", "bad", "terrible"}

// SymptomLog is a daily symptom entry. ClientKey is a client-generated
// idempotency key set for entries created offline; the bulk sync endpoint
// upserts on (patient_id, client_key) so a retried flush never duplicates.
type SymptomLog struct {
	ID        uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PatientID uuid.UUID                   `gorm:"type:uuid;not null;index:idx_symptom_logs_patient_date;uniqueIndex:idx_symptom_logs_client_key" json:"patient_id"`
	Date      time.Time                   `gorm:"not null;index:idx_symptom_logs_patient_date,sort:desc" json:"date"`
	Mood      string                      `gorm:"size:20;not null" json:"mood"`
	PainLevel int                         `gorm:"not null" json:"pain_level"`
	Symptoms  datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"symptoms"`
	Notes     string                      `gorm:"type:text" json:"notes,omitempty"`
	Synced    bool                        `gorm:"default:true" json:"synced"`
	ClientKey *string                     `gorm:"size:36;uniqueIndex:idx_symptom_logs_client_key" json:"client_key,omitempty"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}
