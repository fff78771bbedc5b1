package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Completer produces a completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// HTTPCompleter calls an external completion API.
type HTTPCompleter struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

type completeRequest struct {
	Message string `json:"message"`
}

type completeResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

func NewHTTPCompleter(baseURL, apiKey string) *HTTPCompleter {
	return &HTTPCompleter{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *HTTPCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(completeRequest{Message: prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat: upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat: upstream returned %d", resp.StatusCode)
	}

	var out completeResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("chat: failed to decode upstream response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("chat: upstream error: %s", out.Error)
	}

	return out.Response, nil
}
