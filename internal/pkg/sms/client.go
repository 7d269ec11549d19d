package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.geezsms.com/api/v1"

// Sender delivers SMS messages.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// Client talks to the GeezSMS HTTP API.
type Client struct {
	apiKey     string
	senderID   string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, senderID, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:   apiKey,
		senderID: senderID,
		baseURL:  baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

func (c *Client) Send(ctx context.Context, phone, message string) error {
	payload := map[string]string{
		"phone": phone,
		"msg":   message,
	}
	if c.senderID != "" {
		payload["shortcode_id"] = c.senderID
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sms/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}
