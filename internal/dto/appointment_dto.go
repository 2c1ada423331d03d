package dto

import (
	"strings"
	"time"
)

type CreateAppointmentRequest struct {
	DoctorName string    `json:"doctor_name"`
	Department string    `json:"department"`
	Date       time.Time `json:"date"`
	Location   string    `json:"location"`
	Notes      string    `json:"notes,omitempty"`
}

func (r *CreateAppointmentRequest) Validate() map[string]string {
	problems := make(map[string]string)
	if strings.TrimSpace(r.DoctorName) == "" {
		problems["doctor_name"] = "doctor name is required"
	}
	if strings.TrimSpace(r.Department) == "" {
		problems["department"] = "department is required"
	}
	if r.Date.IsZero() {
		problems["date"] = "appointment date is required"
	}
	if strings.TrimSpace(r.Location) == "" {
		problems["location"] = "location is required"
	}
	return problems
}

// UpdateAppointmentRequest is a partial patch; nil fields are left untouched.
type UpdateAppointmentRequest struct {
	DoctorName *string    `json:"doctor_name,omitempty"`
	Department *string    `json:"department,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
	Location   *string    `json:"location,omitempty"`
	Status     *string    `json:"status,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
}

func (r *UpdateAppointmentRequest) Validate() map[string]string {
	problems := make(map[string]string)
	if r.Status != nil {
		switch *r.Status {
		case "upcoming", "completed", "cancelled":
		default:
			problems["status"] = "status must be upcoming, completed or cancelled"
		}
	}
	return problems
}
