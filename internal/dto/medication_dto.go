package dto

import (
	"strings"
	"time"
)

type CreateMedicationRequest struct {
	Name         string     `json:"name"`
	Dosage       string     `json:"dosage"`
	Frequency    string     `json:"frequency"`
	Times        []string   `json:"times"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Instructions string     `json:"instructions,omitempty"`
}

func (r *CreateMedicationRequest) Validate() map[string]string {
	problems := make(map[string]string)
	if strings.TrimSpace(r.Name) == "" {
		problems["name"] = "medication name is required"
	}
	if strings.TrimSpace(r.Dosage) == "" {
		problems["dosage"] = "dosage is required"
	}
	if !validFrequency(r.Frequency) {
		problems["frequency"] = "frequency must be one of once_daily, twice_daily, thrice_daily, weekly, as_needed"
	}
	if len(r.Times) == 0 && r.Frequency != "as_needed" {
		problems["times"] = "at least one intake time is required"
	}
	return problems
}

type UpdateMedicationRequest struct {
	Name         *string    `json:"name,omitempty"`
	Dosage       *string    `json:"dosage,omitempty"`
	Frequency    *string    `json:"frequency,omitempty"`
	Times        *[]string  `json:"times,omitempty"`
	Active       *bool      `json:"active,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Instructions *string    `json:"instructions,omitempty"`
}

func (r *UpdateMedicationRequest) Validate() map[string]string {
	problems := make(map[string]string)
	if r.Frequency != nil && !validFrequency(*r.Frequency) {
		problems["frequency"] = "frequency must be one of once_daily, twice_daily, thrice_daily, weekly, as_needed"
	}
	return problems
}

type MarkTakenRequest struct {
	Time string `json:"time"`
}

func validFrequency(f string) bool {
	switch f {
	case "once_daily", "twice_daily", "thrice_daily", "weekly", "as_needed":
		return true
	}
	return false
}
