package llm

import "context"

// Provider defines the interface for a single LLM backend. Implementations
// handle protocol-specific details such as request formatting, authentication,
// and response parsing, and return the generated text of the first reply.
type Provider interface {
	// Complete sends a chat completion request and returns the reply text.
	Complete(ctx context.Context, messages []Message) (string, error)

	// Name returns the backend name ("openai", "azure", "ollama").
	Name() string
}

// Config holds the settings for all supported backends. Only the block
// matching Backend is consulted at construction time.
type Config struct {
	// Backend selects the provider: "openai", "azure" (or "azure_openai"),
	// or "ollama". Matched case-insensitively.
	Backend string

	OpenAI OpenAIConfig
	Azure  AzureConfig
	Ollama OllamaConfig
}

// OpenAIConfig configures the hosted OpenAI backend.
type OpenAIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// AzureConfig configures an Azure OpenAI deployment. BaseURL,
// DeploymentName, and APIKey are all required; APIVersion defaults to
// DefaultAzureAPIVersion when empty.
type AzureConfig struct {
	BaseURL        string
	DeploymentName string
	APIKey         string
	APIVersion     string
}

// OllamaConfig configures a local Ollama server.
type OllamaConfig struct {
	URL   string
	Model string
}

// DefaultAzureAPIVersion is used when the configuration leaves the Azure
// API version unset.
const DefaultAzureAPIVersion = "2023-05-15"
