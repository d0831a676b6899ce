package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	hfDefaultBaseURL = "https://api-inference.huggingface.co"
	hfDefaultModel   = "google/flan-t5-large"
)

// HFClient calls the Hugging Face Inference API for text generation.
type HFClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
}

// NewHFClient returns a client for the given model; an empty model selects
// the default instruction-tuned backend.
func NewHFClient(apiKey, model string, httpTimeout time.Duration) *HFClient {
	if httpTimeout <= 0 {
		httpTimeout = 60 * time.Second
	}
	if model == "" {
		model = hfDefaultModel
	}
	return &HFClient{
		httpClient: &http.Client{Timeout: httpTimeout},
		apiKey:     apiKey,
		baseURL:    hfDefaultBaseURL,
		model:      model,
	}
}

// NewHFClientWithBaseURL allows injecting a custom base URL (used in tests).
func NewHFClientWithBaseURL(apiKey, model string, httpTimeout time.Duration, baseURL string) *HFClient {
	c := NewHFClient(apiKey, model, httpTimeout)
	if baseURL != "" {
		c.baseURL = baseURL
	}
	return c
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens int     `json:"max_new_tokens,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
}

type hfResult struct {
	GeneratedText string `json:"generated_text"`
}

// GenerateText sends the prompt to the inference endpoint and returns the
// generated text with any prompt echo stripped.
func (c *HFClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("hugging face api key: %w", ErrCredentialMissing)
	}
	payload, err := json.Marshal(hfRequest{
		Inputs:     prompt,
		Parameters: hfParameters{MaxNewTokens: 180, Temperature: 0.4},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	endpoint := c.baseURL + "/models/" + url.PathEscape(c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
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

	// The API returns either a bare object or a one-element array.
	var one hfResult
	if err := json.Unmarshal(body, &one); err == nil && one.GeneratedText != "" {
		return stripEcho(one.GeneratedText, prompt), nil
	}
	var many []hfResult
	if err := json.Unmarshal(body, &many); err == nil && len(many) > 0 && many[0].GeneratedText != "" {
		return stripEcho(many[0].GeneratedText, prompt), nil
	}
	return "", fmt.Errorf("decode response: no generated_text field")
}

// stripEcho removes a leading copy of the prompt, which some text-generation
// models include in their output.
func stripEcho(text, prompt string) string {
	return strings.TrimSpace(strings.Replace(text, prompt, "", 1))
}

func errMessage(body []byte) string {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err == nil {
		if msg, ok := raw["error"].(string); ok {
			return msg
		}
		if msg, ok := raw["message"].(string); ok {
			return msg
		}
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
