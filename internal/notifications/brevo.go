package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBrevoEndpoint = "https://api.brevo.com/v3/smtp/email"

type BrevoClient struct {
	apiKey      string
	senderEmail string
	senderName  string
	sandbox     bool
	endpoint    string
	httpClient  *http.Client
}

func NewBrevoClient(apiKey, senderEmail, senderName string, sandbox bool) *BrevoClient {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(senderEmail) == "" {
		return nil
	}
	if strings.TrimSpace(senderName) == "" {
		senderName = senderEmail
	}
	return &BrevoClient{
		apiKey:      apiKey,
		senderEmail: senderEmail,
		senderName:  senderName,
		sandbox:     sandbox,
		endpoint:    defaultBrevoEndpoint,
		httpClient:  &http.Client{Timeout: 8 * time.Second},
	}
}

func (c *BrevoClient) Send(ctx context.Context, msg Message) error {
	if c == nil {
		return errors.New("brevo client is nil")
	}
	if strings.TrimSpace(msg.To) == "" {
		return errors.New("missing recipient email")
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return errors.New("missing subject")
	}
	if strings.TrimSpace(msg.HTML) == "" && strings.TrimSpace(msg.Text) == "" {
		return errors.New("missing body")
	}

	payload := brevoSendRequest{
		Sender: brevoSender{
			Name:  c.senderName,
			Email: c.senderEmail,
		},
		To: []brevoRecipient{
			{
				Email: msg.To,
				Name:  msg.ToName,
			},
		},
		Subject:     msg.Subject,
		HtmlContent: msg.HTML,
		TextContent: msg.Text,
	}
	if strings.TrimSpace(msg.ReplyTo) != "" {
		payload.ReplyTo = &brevoRecipient{Email: msg.ReplyTo}
	}
	if c.sandbox {
		payload.Headers = map[string]string{
			"X-Sib-Sandbox": "drop",
		}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("brevo marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("brevo create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("brevo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("brevo send failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

type brevoSendRequest struct {
	Sender      brevoSender       `json:"sender"`
	To          []brevoRecipient  `json:"to"`
	ReplyTo     *brevoRecipient   `json:"replyTo,omitempty"`
	Subject     string            `json:"subject"`
	HtmlContent string            `json:"htmlContent,omitempty"`
	TextContent string            `json:"textContent,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
}

type brevoSender struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type brevoRecipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}
