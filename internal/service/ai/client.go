package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/zhouzirui/ollama-chat/backend/internal/config"
)

// Model is the only model this client ever asks for.
const Model = "llama3.2"

const generatePath = "/api/generate"

// Client sends single, non-streamed prompts to an Ollama server.
// It keeps no state between calls and never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the configured backend. The http.Client has
// no timeout; a call only ends when the server answers or ctx is cancelled.
func NewClient(cfg config.InferenceConfig) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultOllamaBaseURL
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// BaseURL returns the backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Model returns the model identifier sent with every request.
func (c *Client) Model() string {
	return Model
}

// Generate posts input as the prompt and returns the "response" field of the
// reply. A reply without that field yields "". Transport failures and
// bodies that are not JSON objects are returned as *ClientError.
func (c *Client) Generate(ctx context.Context, input string) (string, error) {
	body, err := json.Marshal(GenerateRequest{
		Model:  Model,
		Prompt: input,
		Stream: false,
	})
	if err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "ollama request failed", Cause: err}
	}
	defer resp.Body.Close()

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	if msg, ok := payload["error"].(string); ok && msg != "" {
		log.Printf("[ai] ollama returned error status=%d: %s", resp.StatusCode, msg)
	}

	text, _ := payload["response"].(string)
	log.Printf("[ai] generated response model=%s, prompt=%d, length=%d", Model, len(input), len(text))
	return text, nil
}
