package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRegisterRequestValidate(t *testing.T) {
	valid := RegisterRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "secret-pass-1",
		Role:     "patient",
	}
	require.Empty(t, valid.Validate())

	tests := []struct {
		name  string
		mut   func(*RegisterRequest)
		field string
	}{
		{"blank name", func(r *RegisterRequest) { r.Name = "  " }, "name"},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }, "email"},
		{"short password", func(r *RegisterRequest) { r.Password = "short" }, "password"},
		{"bad role", func(r *RegisterRequest) { r.Role = "admin" }, "role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mut(&req)
			problems := req.Validate()
			require.Contains(t, problems, tt.field)
		})
	}
}

func TestRegisterRequestDefaultsRole(t *testing.T) {
	req := RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret-pass-1"}
	require.Empty(t, req.Validate(), "empty role is allowed and defaults server-side")
}

func TestCreateSymptomLogValidate(t *testing.T) {
	valid := CreateSymptomLogRequest{Mood: "good", PainLevel: 4}
	require.Empty(t, valid.Validate())

	bad := CreateSymptomLogRequest{Mood: "ecstatic", PainLevel: 11}
	problems := bad.Validate()
	require.Contains(t, problems, "mood")
	require.Contains(t, problems, "pain_level")
}

func TestBulkSymptomLogRequestRequiresClientKeys(t *testing.T) {
	empty := BulkSymptomLogRequest{}
	require.Contains(t, empty.Validate(), "logs")

	missingKey := BulkSymptomLogRequest{Logs: []CreateSymptomLogRequest{
		{Mood: "good", PainLevel: 1, ClientKey: "k1"},
		{Mood: "okay", PainLevel: 2},
	}}
	require.Contains(t, missingKey.Validate(), "client_key")

	ok := BulkSymptomLogRequest{Logs: []CreateSymptomLogRequest{
		{Mood: "good", PainLevel: 1, ClientKey: "k1"},
	}}
	require.Empty(t, ok.Validate())
}

func TestCreateAppointmentValidate(t *testing.T) {
	valid := CreateAppointmentRequest{
		DoctorName: "Dr. Chen",
		Department: "Cardiology",
		Date:       time.Now().Add(48 * time.Hour),
		Location:   "Building A, Room 12",
	}
	require.Empty(t, valid.Validate())

	var missing CreateAppointmentRequest
	problems := missing.Validate()
	require.Contains(t, problems, "doctor_name")
	require.Contains(t, problems, "department")
	require.Contains(t, problems, "date")
	require.Contains(t, problems, "location")
}

func TestUpdateAppointmentValidateStatus(t *testing.T) {
	bad := "rescheduled"
	req := UpdateAppointmentRequest{Status: &bad}
	require.Contains(t, req.Validate(), "status")

	good := "cancelled"
	req.Status = &good
	require.Empty(t, req.Validate())
}

func TestCreateMedicationValidate(t *testing.T) {
	valid := CreateMedicationRequest{
		Name:      "Lisinopril",
		Dosage:    "10mg",
		Frequency: "once_daily",
		Times:     []string{"08:00"},
	}
	require.Empty(t, valid.Validate())

	noTimes := valid
	noTimes.Times = nil
	require.Contains(t, noTimes.Validate(), "times")

	asNeeded := valid
	asNeeded.Frequency = "as_needed"
	asNeeded.Times = nil
	require.Empty(t, asNeeded.Validate(), "as_needed has no schedule")

	badFreq := valid
	badFreq.Frequency = "hourly"
	require.Contains(t, badFreq.Validate(), "frequency")
}
