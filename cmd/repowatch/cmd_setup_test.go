package main

import (
	"testing"

	"github.com/user/repowatch/internal/config"
)

func TestScrubEnvSecrets(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "env-gh-token")
	t.Setenv("AZURE_OPENAI_KEY", "env-azure-key")
	t.Setenv("OPENAI_API_KEY", "")

	cfg := &config.Config{}
	cfg.GitHub.Token = "env-gh-token"
	cfg.LLM.AzureAPIKey = "env-azure-key"
	cfg.LLM.OpenAIAPIKey = "typed-at-prompt"
	cfg.Email.Password = "from-file"

	scrubEnvSecrets(cfg)

	if cfg.GitHub.Token != "" {
		t.Errorf("env-sourced github token should be scrubbed, got %q", cfg.GitHub.Token)
	}
	if cfg.LLM.AzureAPIKey != "" {
		t.Errorf("env-sourced azure key should be scrubbed, got %q", cfg.LLM.AzureAPIKey)
	}
	if cfg.LLM.OpenAIAPIKey != "typed-at-prompt" {
		t.Errorf("user-entered key should survive, got %q", cfg.LLM.OpenAIAPIKey)
	}
	if cfg.Email.Password != "from-file" {
		t.Errorf("file-sourced password should survive, got %q", cfg.Email.Password)
	}
}
