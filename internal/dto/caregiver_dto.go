package dto

import "github.com/google/uuid"

type LinkRequest struct {
	AccessCode string `json:"access_code"`
}

type LinkResponse struct {
	PatientID   uuid.UUID `json:"patient_id"`
	PatientName string    `json:"patient_name"`
}

type AccessCodeResponse struct {
	AccessCode string `json:"access_code"`
}

type LinkedPatientResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone,omitempty"`
}
