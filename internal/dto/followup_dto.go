package dto

import (
	"strings"
	"time"
)

type CreateFollowUpRequest struct {
	Title         string    `json:"title"`
	ScheduledDate time.Time `json:"scheduled_date"`
	Type          string    `json:"type"`
	Notes         string    `json:"notes,omitempty"`
	Location      string    `json:"location,omitempty"`
}

func (r *CreateFollowUpRequest) Validate() map[string]string {
	problems := make(map[string]string)
	if strings.TrimSpace(r.Title) == "" {
		problems["title"] = "title is required"
	}
	if r.ScheduledDate.IsZero() {
		problems["scheduled_date"] = "scheduled date is required"
	}
	switch r.Type {
	case "scan", "doctor_visit", "lab_test", "other":
	default:
		problems["type"] = "type must be one of scan, doctor_visit, lab_test, other"
	}
	return problems
}

type UpdateFollowUpRequest struct {
	Title         *string    `json:"title,omitempty"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	Type          *string    `json:"type,omitempty"`
	Status        *string    `json:"status,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	Location      *string    `json:"location,omitempty"`
}

func (r *UpdateFollowUpRequest) Validate() map[string]string {
	problems := make(map[string]string)
	if r.Status != nil {
		switch *r.Status {
		case "pending", "completed", "cancelled":
		default:
			problems["status"] = "status must be pending, completed or cancelled"
		}
	}
	if r.Type != nil {
		switch *r.Type {
		case "scan", "doctor_visit", "lab_test", "other":
		default:
			problems["type"] = "type must be one of scan, doctor_visit, lab_test, other"
		}
	}
	return problems
}
