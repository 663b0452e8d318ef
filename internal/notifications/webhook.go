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

// ChatWebhook posts short notifications to a chat platform incoming-webhook
// URL. It is a best-effort secondary channel; callers log failures and move
// on instead of failing the request.
type ChatWebhook struct {
	url        string
	httpClient *http.Client
}

func NewChatWebhook(url string) *ChatWebhook {
	if strings.TrimSpace(url) == "" {
		return nil
	}
	return &ChatWebhook{
		url:        url,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *ChatWebhook) Notify(ctx context.Context, text string) error {
	if c == nil {
		return errors.New("chat webhook is nil")
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("missing message text")
	}

	raw, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("chat webhook marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("chat webhook create request: %w", err)
	}
	req.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("chat webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("chat webhook failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
