package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Generator is the narrow capability the chat service needs from a
// text-generation backend. The fallback responder never touches it, so the
// service stays fully usable offline.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// APIError indicates a non-success status from the generation backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("generation backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("generation backend returned %d", e.StatusCode)
}

// UnreachableError indicates the backend is not reachable (e.g., local
// Ollama down). Always recovered via the fallback responder.
type UnreachableError struct {
	Host string
	Err  error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("generation endpoint unreachable at %s: %v", e.Host, e.Err)
}

// OllamaClient is a minimal HTTP client for a local Ollama runtime, hitting
// the non-streaming /api/generate endpoint.
type OllamaClient struct {
	httpClient *http.Client
	host       string
	model      string
}

// NewOllamaClient creates a client targeting the given host
// (e.g., http://localhost:11434).
func NewOllamaClient(host, model string, timeout time.Duration) *OllamaClient {
	if host == "" {
		host = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.2:1b"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OllamaClient{
		httpClient: &http.Client{Timeout: timeout},
		host:       host,
		model:      model,
	}
}

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate sends the prompt to Ollama and returns the completion text.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(ollamaGenerateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: map[string]any{
			"temperature": 0.3,
			"num_predict": 300,
			"top_p":       0.9,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.host + "/api/generate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &UnreachableError{Host: c.host, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var raw map[string]any
		if json.Unmarshal(body, &raw) == nil {
			if msg, ok := raw["error"].(string); ok {
				apiErr.Message = msg
			}
		}
		return "", apiErr
	}

	var oresp ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&oresp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return oresp.Response, nil
}
