// Package notifier provides the notification dispatcher client.
//
// Delivery is best-effort: workflow operations log dispatch failures and
// never roll back on them.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ehub-platform/event-service/internal/config"
)

// Dispatcher sends a notification to a single recipient.
type Dispatcher interface {
	Send(ctx context.Context, to, subject, body string) error
}

// emailRequest is the payload the notification service expects.
type emailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Client dispatches notifications over HTTP to the notification service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a dispatcher from environment configuration.
func NewClient() *Client {
	return NewClientWithURL(config.GetEnv("NOTIFICATION_SERVICE_URL", "http://localhost:8084/notify"))
}

// NewClientWithURL creates a dispatcher targeting the given endpoint.
func NewClientWithURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: config.GetEnvDuration("NOTIFICATION_TIMEOUT", 5*time.Second),
		},
	}
}

// Send posts the notification to the notification service.
func (c *Client) Send(ctx context.Context, to, subject, body string) error {
	payload, err := json.Marshal(emailRequest{To: to, Subject: subject, Message: body})
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to dispatch notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("notification service returned status %d", resp.StatusCode)
	}

	return nil
}

// Nop discards all notifications. Used in tests and when no
// notification service is configured.
type Nop struct{}

// Send does nothing.
func (Nop) Send(ctx context.Context, to, subject, body string) error {
	return nil
}
