package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSymptomLogRequest struct {
	Date      *time.Time `json:"date,omitempty"`
	Mood      string     `json:"mood"`
	PainLevel int        `json:"pain_level"`
	Symptoms  []string   `json:"symptoms,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	// ClientKey is set by clients that created the entry offline; it makes
	// retried submissions idempotent.
	ClientKey string `json:"client_key,omitempty"`
}

func (r *CreateSymptomLogRequest) Validate() map[string]string {
	problems := make(map[string]string)
	if !validMood(r.Mood) {
		problems["mood"] = "mood must be one of great, good, okay, bad, terrible"
	}
	if r.PainLevel < 0 || r.PainLevel > 10 {
		problems["pain_level"] = "pain level must be between 0 and 10"
	}
	return problems
}

type BulkSymptomLogRequest struct {
	Logs []CreateSymptomLogRequest `json:"logs"`
}

func (r *BulkSymptomLogRequest) Validate() map[string]string {
	problems := make(map[string]string)
	if len(r.Logs) == 0 {
		problems["logs"] = "at least one log entry is required"
	}
	for _, l := range r.Logs {
		if l.ClientKey == "" {
			problems["client_key"] = "every bulk entry needs a client key"
			break
		}
	}
	return problems
}

const (
	BulkItemCreated  = "created"
	BulkItemExisting = "existing"
	BulkItemRejected = "rejected"
)

// BulkItemResult reports the outcome for a single queued entry so clients can
// reconcile their offline queue item by item.
type BulkItemResult struct {
	ClientKey string     `json:"client_key"`
	Status    string     `json:"status"`
	ID        *uuid.UUID `json:"id,omitempty"`
	Message   string     `json:"message,omitempty"`
}

type BulkSymptomLogResponse struct {
	Results []BulkItemResult `json:"results"`
}

func validMood(m string) bool {
	switch m {
	case "great", "good", "okay", "bad", "terrible":
		return true
	}
	return false
}
