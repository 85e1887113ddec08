package llm

import (
	"context"
	"log/slog"
	"strings"
)

// Generator hides backend differences behind one call. The backend is
// selected once at construction time and never changes for the lifetime of
// the Generator.
type Generator struct {
	provider Provider
}

// New creates a Generator for the backend named in cfg.Backend.
//
// For the azure backend, BaseURL, DeploymentName, and APIKey must all be
// set; construction fails with a *ConfigError naming the missing fields
// otherwise. An unrecognised backend name also fails with a *ConfigError.
func New(cfg *Config) (*Generator, error) {
	backend := strings.ToLower(cfg.Backend)
	switch backend {
	case "openai":
		return &Generator{provider: newOpenAIClient(cfg.OpenAI)}, nil
	case "azure", "azure_openai":
		client, err := newAzureClient(cfg.Azure)
		if err != nil {
			return nil, err
		}
		return &Generator{provider: client}, nil
	case "ollama":
		return &Generator{provider: newOllamaClient(cfg.Ollama)}, nil
	default:
		return nil, &ConfigError{Backend: backend, Message: "unsupported backend"}
	}
}

// NewWithProvider wraps an existing Provider. Used by tests and callers that
// construct their own backend client.
func NewWithProvider(p Provider) *Generator {
	return &Generator{provider: p}
}

// Backend returns the name of the selected backend.
func (g *Generator) Backend() string {
	return g.provider.Name()
}

// GenerateReport sends a system prompt plus user content to the backend and
// returns the generated text. The call is synchronous and blocking; there is
// no retry and no fallback between backends. Errors are logged and returned
// unchanged for the caller to decide on.
func (g *Generator) GenerateReport(ctx context.Context, systemPrompt, userContent string) (string, error) {
	messages := ReportMessages(systemPrompt, userContent)

	text, err := g.provider.Complete(ctx, messages)
	if err != nil {
		slog.Error("report generation failed", "backend", g.provider.Name(), "error", err)
		return "", err
	}

	slog.Info("report generated", "backend", g.provider.Name(), "chars", len(text))
	return text, nil
}
