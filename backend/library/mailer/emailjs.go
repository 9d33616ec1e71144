// Package mailer is the outbound mail relay for the contact form. It
// speaks the EmailJS REST protocol: one JSON POST carrying a service id,
// a template id and the template parameters.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// EmailJSClient relays messages through an EmailJS-compatible endpoint.
type EmailJSClient struct {
	endpoint string
	userID   string
	client   *http.Client
}

func NewEmailJSClient(endpoint string, userID string) *EmailJSClient {
	return &EmailJSClient{
		endpoint: endpoint,
		userID:   userID,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Send posts one templated message. Any non-2xx answer is an error carrying
// the relay's response body.
func (c *EmailJSClient) Send(ctx context.Context, serviceID string, templateID string, params map[string]string) error {
	payload, err := json.Marshal(sendRequest{
		ServiceID:      serviceID,
		TemplateID:     templateID,
		UserID:         c.userID,
		TemplateParams: params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail relay request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail relay rejected message: %s: %s", resp.Status, string(body))
	}
	return nil
}
