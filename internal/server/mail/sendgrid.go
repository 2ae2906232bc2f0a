package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultEndpoint is the SendGrid v3 Mail Send API endpoint.
const DefaultEndpoint = "https://api.sendgrid.com/v3/mail/send"

// SendGridMailer sends email through the SendGrid v3 HTTP API.
type SendGridMailer struct {
	httpClient *http.Client
	apiKey     string
	endpoint   string
	fromEmail  string
	fromName   string
}

// NewSendGridMailer creates a mailer for the given API key and sender.
// An empty endpoint falls back to DefaultEndpoint.
func NewSendGridMailer(apiKey, endpoint, fromEmail, fromName string) *SendGridMailer {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &SendGridMailer{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		endpoint:   endpoint,
		fromEmail:  fromEmail,
		fromName:   fromName,
	}
}

// Send posts a single plain-text message.
func (m *SendGridMailer) Send(ctx context.Context, to, subject, body string) error {
	payload := sgMailPayload{
		Personalizations: []sgPersonalization{{
			To: []sgAddress{{Email: to}},
		}},
		From:    sgAddress{Email: m.fromEmail, Name: m.fromName},
		Subject: subject,
		Content: []sgContent{{Type: "text/plain", Value: body}},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mail provider returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// SendGrid v3 Mail Send API payload types.
type sgMailPayload struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgAddress           `json:"from"`
	Subject          string              `json:"subject"`
	Content          []sgContent         `json:"content"`
}

type sgPersonalization struct {
	To []sgAddress `json:"to"`
}

type sgAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}
