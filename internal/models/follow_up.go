package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var FollowUpTypes = []string{"scan", "doctor_visit", "lab_test", "other"}

const (
	FollowUpPending   = "pending"
	FollowUpCompleted = "completed"
	FollowUpCancelled = "cancelled"
)

type FollowUp struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PatientID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_follow_ups_patient_date" json:"patient_id"`
	Title         string         `gorm:"size:255;not null" json:"title"`
	ScheduledDate time.Time      `gorm:"not null;index:idx_follow_ups_patient_date" json:"scheduled_date"`
	Type          string         `gorm:"size:20;not null" json:"type"`
	Status        string         `gorm:"size:20;not null;default:'pending'" json:"status"`
	Notes         string         `gorm:"type:text" json:"notes,omitempty"`
	Location      string         `gorm:"size:255" json:"location,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
