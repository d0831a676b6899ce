package ai

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

// SpaceClient calls a self-hosted summarization endpoint: POST <url>/summarize
// with a JSON prompt. The response field name varies by backend, so the
// client accepts "summary", "text", or falls back to the raw body.
type SpaceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewSpaceClient targets the given base URL (trailing slashes are stripped).
func NewSpaceClient(baseURL string, httpTimeout time.Duration) *SpaceClient {
	if httpTimeout <= 0 {
		httpTimeout = 60 * time.Second
	}
	return &SpaceClient{
		httpClient: &http.Client{Timeout: httpTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

type spaceRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateText posts the prompt and extracts the generated text from
// whichever response field the backend uses.
func (c *SpaceClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("space endpoint url: %w", ErrCredentialMissing)
	}
	payload, err := json.Marshal(spaceRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/summarize", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &UnreachableError{Host: c.baseURL, Err: err}
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", classifyStatus(resp.StatusCode, errMessage(body))
	}

	var out struct {
		Summary string `json:"summary"`
		Text    string `json:"text"`
	}
	if err := json.Unmarshal(body, &out); err == nil {
		if out.Summary != "" {
			return strings.TrimSpace(out.Summary), nil
		}
		if out.Text != "" {
			return strings.TrimSpace(out.Text), nil
		}
	}
	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return "", fmt.Errorf("decode response: empty body")
	}
	return raw, nil
}
