package notify

import (
	"fmt"
	"strings"

	"github.com/carelinkhq/carelink-backend/internal/config"
	"github.com/go-resty/resty/v2"
)

// Notifier sends a push notification to a device token. The rest of the
// system only depends on this interface.
type Notifier interface {
	Send(token, title, body string, data map[string]string) error
}

type expoMessage struct {
	To    string            `json:"to"`
	Sound string            `json:"sound"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

type expoResponse struct {
	Data []struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"data"`
}

// ExpoClient delivers notifications through the Expo push API.
type ExpoClient struct {
	httpClient *resty.Client
}

func NewExpoClient(cfg *config.Config) *ExpoClient {
	client := resty.New().
		SetBaseURL(cfg.ExpoPushURL).
		SetTimeout(cfg.PushTimeout).
		SetRetryCount(2).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &ExpoClient{httpClient: client}
}

// IsExpoPushToken reports whether a token has the ExponentPushToken shape.
func IsExpoPushToken(token string) bool {
	return strings.HasPrefix(token, "ExponentPushToken[") && strings.HasSuffix(token, "]")
}

func (c *ExpoClient) Send(token, title, body string, data map[string]string) error {
	if !IsExpoPushToken(token) {
		return fmt.Errorf("invalid expo push token")
	}

	var result expoResponse
	resp, err := c.httpClient.R().
		SetBody([]expoMessage{{
			To:    token,
			Sound: "default",
			Title: title,
			Body:  body,
			Data:  data,
		}}).
		SetResult(&result).
		Post("")
	if err != nil {
		return fmt.Errorf("failed to call expo push API: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("expo push API returned %d", resp.StatusCode())
	}

	for _, ticket := range result.Data {
		if ticket.Status == "error" {
			return fmt.Errorf("expo push rejected: %s", ticket.Message)
		}
	}
	return nil
}
