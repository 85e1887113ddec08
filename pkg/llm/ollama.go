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

// ollamaClient implements Provider for a local Ollama server's chat
// endpoint. No credentials are required.
type ollamaClient struct {
	config     OllamaConfig
	httpClient *http.Client
}

func newOllamaClient(cfg OllamaConfig) *ollamaClient {
	return &ollamaClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *ollamaClient) Name() string { return "ollama" }

// ollamaRequest is the non-streaming chat request body.
type ollamaRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Stream      bool      `json:"stream"`
}

// ollamaResponse carries the single reply message of a non-streaming chat.
type ollamaResponse struct {
	Message Message `json:"message"`
}

func (c *ollamaClient) Complete(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(ollamaRequest{
		Model:       c.config.Model,
		Messages:    messages,
		MaxTokens:   MaxTokens,
		Temperature: Temperature,
		Stream:      false,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Backend: c.Name(), Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Backend: c.Name(), Cause: err}
	}

	// Non-2xx replies are reported as transport failures before any parsing
	// is attempted.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &TransportError{Backend: c.Name(), StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var chatResp ollamaResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", &ResponseError{Backend: c.Name(), Message: fmt.Sprintf("parsing response: %v", err)}
	}

	if chatResp.Message.Content == "" {
		return "", &ResponseError{Backend: c.Name(), Message: "no message content in response"}
	}
	return chatResp.Message.Content, nil
}
