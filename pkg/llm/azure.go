package llm

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

// azureClient implements Provider for Azure OpenAI deployments via the
// chat completions REST endpoint. Azure authenticates with an `api-key`
// header instead of a bearer token, and addresses the model by deployment
// name in the URL path.
type azureClient struct {
	config     AzureConfig
	httpClient *http.Client
}

func newAzureClient(cfg AzureConfig) (*azureClient, error) {
	var missing []string
	if cfg.BaseURL == "" {
		missing = append(missing, "base_url")
	}
	if cfg.DeploymentName == "" {
		missing = append(missing, "deployment_name")
	}
	if cfg.APIKey == "" {
		missing = append(missing, "api_key")
	}
	if len(missing) > 0 {
		return nil, &ConfigError{Backend: "azure", Fields: missing}
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAzureAPIVersion
	}

	return &azureClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

func (c *azureClient) Name() string { return "azure" }

// azureRequest is the deployment chat completions request body. The model
// is implied by the deployment in the URL, so only sampling parameters and
// messages are sent.
type azureRequest struct {
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	TopP        float64   `json:"top_p"`
}

func (c *azureClient) Complete(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(azureRequest{
		Messages:    messages,
		MaxTokens:   MaxTokens,
		Temperature: Temperature,
		TopP:        TopP,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.config.BaseURL, c.config.DeploymentName, c.config.APIVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.config.APIKey)

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
