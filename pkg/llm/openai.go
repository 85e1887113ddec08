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

// DefaultOpenAIBaseURL is the hosted OpenAI API root.
const DefaultOpenAIBaseURL = "https://api.openai.com/v1"

// openaiClient implements Provider for the hosted OpenAI chat completions
// API. The API key is injected explicitly through the configuration rather
// than read from the process environment by the client itself.
type openaiClient struct {
	config     OpenAIConfig
	httpClient *http.Client
}

func newOpenAIClient(cfg OpenAIConfig) *openaiClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOpenAIBaseURL
	}
	return &openaiClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *openaiClient) Name() string { return "openai" }

// openaiRequest is the chat completions request body.
type openaiRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// chatResponse is the choices envelope shared by the OpenAI-compatible
// backends (hosted OpenAI and Azure deployments).
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message Message `json:"message"`
}

func (c *openaiClient) Complete(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(openaiRequest{
		Model:    c.config.Model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := c.config.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Backend: c.Name(), Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Backend: c.Name(), Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &TransportError{Backend: c.Name(), StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", &ResponseError{Backend: c.Name(), Message: fmt.Sprintf("parsing response: %v", err)}
	}

	if len(chatResp.Choices) == 0 {
		return "", &ResponseError{Backend: c.Name(), Message: "no choices in response"}
	}

	content := chatResp.Choices[0].Message.Content
	if content == "" {
		return "", &ResponseError{Backend: c.Name(), Message: "first choice has no message content"}
	}
	return content, nil
}
