package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 15 * time.Second

// HTTPSender delivers messages through a JSON SMS gateway API.
type HTTPSender struct {
	apiKey  string
	baseURL string
	sender  string
	client  *http.Client
}

func NewHTTPSender(apiKey, baseURL, sender string) *HTTPSender {
	return &HTTPSender{
		apiKey:  apiKey,
		baseURL: baseURL,
		sender:  sender,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

func (c *HTTPSender) Send(ctx context.Context, to, body string) error {
	if c.apiKey == "" {
		return fmt.Errorf("sms: API key not configured")
	}

	payload, err := json.Marshal(map[string]string{
		"sender":  c.sender,
		"to":      to,
		"message": body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sms: request failed status=%d body=%s", resp.StatusCode, string(b))
	}
	return nil
}
