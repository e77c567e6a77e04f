package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WebhookSender delivers notifications as JSON POSTs to a configured
// endpoint, e.g. a home-automation bridge or ntfy-style relay that
// turns them into device pushes.
type WebhookSender struct {
	url    string
	client *http.Client
}

// webhookPayload is the wire format posted to the endpoint.
type webhookPayload struct {
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Channel   string            `json:"channel"`
	Priority  string            `json:"priority"`
	Fields    map[string]string `json:"fields,omitempty"`
	Timestamp string            `json:"timestamp"`
}

// NewWebhookSender creates a sender posting to the given URL.
func NewWebhookSender(url string) *WebhookSender {
	return &WebhookSender{
		url: url,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Send posts the notification. Non-2xx responses are errors; the
// caller decides whether delivery failure matters.
func (s *WebhookSender) Send(ctx context.Context, n Notification) error {
	payload := webhookPayload{
		Title:     n.Title,
		Message:   n.Body,
		Channel:   n.Channel.ID,
		Priority:  string(n.Channel.Priority),
		Fields:    n.Data,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Nestling/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned HTTP %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
