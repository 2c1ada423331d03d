package client

import (
	"context"
	"net/http"
)

// RegisterParams are the fields needed to create an account.
type RegisterParams struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (c *Client) Register(ctx context.Context, params RegisterParams) (*Identity, error) {
	var resp authResponse
	if err := c.public(ctx, http.MethodPost, "/auth/register", params, &resp); err != nil {
		return nil, err
	}
	return c.adoptSession(&resp)
}

func (c *Client) Login(ctx context.Context, email, password string) (*Identity, error) {
	var resp authResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.public(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return c.adoptSession(&resp)
}

// adoptSession persists the credential set and flips the session to
// authenticated. Tokens are stored before the identity so a crash in between
// leaves a recoverable state rather than an identity with no credentials.
func (c *Client) adoptSession(resp *authResponse) (*Identity, error) {
	if err := c.vault.SetTokens(&resp.Tokens); err != nil {
		return nil, err
	}
	if err := c.vault.SetIdentity(&resp.User); err != nil {
		return nil, err
	}
	c.session.set(&resp.User)
	return &resp.User, nil
}

// Logout drops the local session. The server holds a single refresh hash per
// user, so there is nothing to revoke remotely; the next login overwrites it.
func (c *Client) Logout() error {
	err := c.vault.Clear()
	c.session.clear()
	return err
}

func (c *Client) Me(ctx context.Context) (*Identity, error) {
	var identity Identity
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &identity); err != nil {
		return nil, err
	}
	if err := c.vault.SetIdentity(&identity); err != nil {
		return nil, err
	}
	c.session.set(&identity)
	return &identity, nil
}

// UpdateProfile patches the given fields on the authenticated user.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) (*Identity, error) {
	var identity Identity
	if err := c.do(ctx, http.MethodPut, "/auth/profile", fields, &identity); err != nil {
		return nil, err
	}
	if err := c.vault.SetIdentity(&identity); err != nil {
		return nil, err
	}
	c.session.set(&identity)
	return &identity, nil
}

func (c *Client) UpdatePushToken(ctx context.Context, token string) error {
	body := map[string]string{"expo_push_token": token}
	return c.do(ctx, http.MethodPut, "/auth/push-token", body, nil)
}

// LinkPatient binds the caregiver to the patient owning the access code and
// returns the patient's display name.
func (c *Client) LinkPatient(ctx context.Context, accessCode string) (string, error) {
	var resp struct {
		PatientID   string `json:"patient_id"`
		PatientName string `json:"patient_name"`
	}
	body := map[string]string{"access_code": accessCode}
	if err := c.do(ctx, http.MethodPost, "/caregiver/link", body, &resp); err != nil {
		return "", err
	}

	// The link changes the caregiver's scope; refresh the cached identity.
	if _, err := c.Me(ctx); err != nil {
		return resp.PatientName, err
	}
	return resp.PatientName, nil
}

func (c *Client) LinkedPatient(ctx context.Context) (*LinkedPatient, error) {
	var patient LinkedPatient
	if err := c.do(ctx, http.MethodGet, "/caregiver/patient", nil, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// AccessCode returns the patient's shareable link code, generating one on the
// server if the account does not have one yet.
func (c *Client) AccessCode(ctx context.Context) (string, error) {
	var resp struct {
		AccessCode string `json:"access_code"`
	}
	if err := c.do(ctx, http.MethodGet, "/caregiver/access-code", nil, &resp); err != nil {
		return "", err
	}
	return resp.AccessCode, nil
}

func (c *Client) Appointments(ctx context.Context) ([]Appointment, error) {
	var resp listResponse[Appointment]
	if err := c.do(ctx, http.MethodGet, "/appointments", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) CreateAppointment(ctx context.Context, data map[string]any) (*Appointment, error) {
	var created Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments", data, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateAppointment(ctx context.Context, id string, patch map[string]any) error {
	return c.do(ctx, http.MethodPut, "/appointments/"+id, patch, nil)
}

func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/appointments/"+id, nil, nil)
}

func (c *Client) Medications(ctx context.Context) ([]Medication, error) {
	var resp listResponse[Medication]
	if err := c.do(ctx, http.MethodGet, "/medications", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) CreateMedication(ctx context.Context, data map[string]any) (*Medication, error) {
	var created Medication
	if err := c.do(ctx, http.MethodPost, "/medications", data, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateMedication(ctx context.Context, id string, patch map[string]any) error {
	return c.do(ctx, http.MethodPut, "/medications/"+id, patch, nil)
}

func (c *Client) DeleteMedication(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/medications/"+id, nil, nil)
}

// MarkMedicationTaken records a dose against the medication's taken log.
// The time is the scheduled slot, e.g. "08:00".
func (c *Client) MarkMedicationTaken(ctx context.Context, id, at string) error {
	body := map[string]string{"time": at}
	return c.do(ctx, http.MethodPost, "/medications/"+id+"/taken", body, nil)
}

func (c *Client) SymptomLogs(ctx context.Context) ([]SymptomLog, error) {
	var resp listResponse[SymptomLog]
	if err := c.do(ctx, http.MethodGet, "/symptoms", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) CreateSymptomLog(ctx context.Context, log SymptomLog) (*SymptomLog, error) {
	var created SymptomLog
	if err := c.do(ctx, http.MethodPost, "/symptoms", log, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) BulkSymptomLogs(ctx context.Context, logs []SymptomLog) (*bulkResponse, error) {
	var resp bulkResponse
	body := map[string]any{"logs": logs}
	if err := c.do(ctx, http.MethodPost, "/symptoms/bulk", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
