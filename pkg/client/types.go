package client

import "time"

// TokenPair is the dual-token credential set issued by the server.
type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// Identity is the cached view of the authenticated user.
type Identity struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone,omitempty"`
	Role            string  `json:"role"`
	LinkedPatientID *string `json:"linked_patient_id,omitempty"`
	Language        string  `json:"language"`
}

// LinkedPatient is the caregiver's view of the patient they are linked to.
type LinkedPatient struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type authResponse struct {
	User   Identity  `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

type errorResponse struct {
	Error   bool              `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type Appointment struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patient_id"`
	DoctorName string    `json:"doctor_name"`
	Department string    `json:"department"`
	Date       time.Time `json:"date"`
	Location   string    `json:"location"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
}

func (a Appointment) EntityID() string { return a.ID }

type Medication struct {
	ID           string     `json:"id"`
	PatientID    string     `json:"patient_id"`
	Name         string     `json:"name"`
	Dosage       string     `json:"dosage"`
	Frequency    string     `json:"frequency"`
	Times        []string   `json:"times"`
	Active       bool       `json:"active"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Instructions string     `json:"instructions,omitempty"`
}

func (m Medication) EntityID() string { return m.ID }

type SymptomLog struct {
	ID        string    `json:"id,omitempty"`
	Date      time.Time `json:"date"`
	Mood      string    `json:"mood"`
	PainLevel int       `json:"pain_level"`
	Symptoms  []string  `json:"symptoms,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	ClientKey string    `json:"client_key,omitempty"`
}

type listResponse[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

type bulkItemResult struct {
	ClientKey string `json:"client_key"`
	Status    string `json:"status"`
	ID        string `json:"id,omitempty"`
	Message   string `json:"message,omitempty"`
}

type bulkResponse struct {
	Results []bulkItemResult `json:"results"`
}
