package dto

import "github.com/google/uuid"

type SendNotificationRequest struct {
	UserID uuid.UUID         `json:"user_id"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}

type SendReminderRequest struct {
	PatientID uuid.UUID `json:"patient_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title,omitempty"`
	Body      string    `json:"body,omitempty"`
}
