package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AppointmentUpcoming  = "upcoming"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

type Appointment struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PatientID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_appointments_patient_date" json:"patient_id"`
	DoctorName   string         `gorm:"size:100;not null" json:"doctor_name"`
	Department   string         `gorm:"size:100;not null" json:"department"`
	Date         time.Time      `gorm:"not null;index:idx_appointments_patient_date" json:"date"`
	Location     string         `gorm:"size:255;not null" json:"location"`
	Status       string         `gorm:"size:20;not null;default:'upcoming'" json:"status"`
	Notes        string         `gorm:"type:text" json:"notes,omitempty"`
	ReminderSent bool           `gorm:"default:false" json:"reminder_sent"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
