package discordclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client posts webhook messages to a Discord webhook endpoint.
// Each Post is a single delivery attempt with no retry; failures are
// surfaced to the caller to report once.
type Client struct {
	webhookURL string
	httpClient *http.Client
}

// NewClient creates a webhook client for the given URL
func NewClient(webhookURL string) (*Client, error) {
	if err := ValidateWebhookURL(webhookURL); err != nil {
		return nil, err
	}

	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

// ValidateWebhookURL checks that a webhook URL has the expected Discord shape
func ValidateWebhookURL(url string) error {
	if url == "" {
		return fmt.Errorf("webhook URL is empty")
	}
	if !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("webhook URL must use https")
	}
	if !strings.Contains(url, "/api/webhooks/") {
		return fmt.Errorf("webhook URL does not look like a Discord webhook")
	}
	return nil
}

// Post sends a webhook message. Any non-2xx response is an error.
func (c *Client) Post(ctx context.Context, message Message) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook post failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	return nil
}

// TestMessage builds the canned embed sent by the webhook test operation
func TestMessage(now time.Time) Message {
	return Message{
		Embeds: []Embed{{
			Title:       "Webhook Test",
			Description: "TeamSync can reach this channel. You're all set!",
			Color:       ColorTest,
			Timestamp:   now.UTC().Format(time.RFC3339),
			Footer:      &EmbedFooter{Text: "TeamSync"},
		}},
	}
}
