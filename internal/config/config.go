package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/user/repowatch/pkg/llm"
)

type Config struct {
	DataDir  string `json:"data_dir"`
	LogLevel string `json:"log_level"`
	Email    struct {
		SMTPServer string   `json:"smtp_server"`
		SMTPPort   int      `json:"smtp_port"`
		From       string   `json:"from"`
		To         []string `json:"to"`
		Password   string   `json:"password"`
	} `json:"email"`
	GitHub struct {
		Token             string `json:"token"`
		SubscriptionsFile string `json:"subscriptions_file"`
		FreqDays          int    `json:"progress_frequency_days"`
		ExecTime          string `json:"progress_execution_time"`
	} `json:"github"`
	LLM struct {
		ModelType       string `json:"model_type"`
		OpenAIModelName string `json:"openai_model_name"`
		OpenAIAPIKey    string `json:"openai_api_key"`
		OpenAIBaseURL   string `json:"openai_base_url"`
		OllamaModelName string `json:"ollama_model_name"`
		OllamaAPIURL    string `json:"ollama_api_url"`

		// Azure settings are accepted both flat and as a nested block;
		// the flat keys win when both are present.
		AzureBaseURL        string `json:"azure_base_url"`
		AzureDeploymentName string `json:"azure_deployment_name"`
		AzureAPIKey         string `json:"azure_api_key"`
		AzureAPIVersion     string `json:"azure_api_version"`
		Azure               struct {
			BaseURL        string `json:"base_url"`
			DeploymentName string `json:"deployment_name"`
			APIKey         string `json:"api_key"`
			APIVersion     string `json:"api_version"`
		} `json:"azure"`
	} `json:"llm"`
	ReportTypes []string `json:"report_types"`
	Slack       struct {
		WebhookURL string `json:"webhook_url"`
	} `json:"slack"`
	Telegram struct {
		Token  string `json:"token"`
		ChatID int64  `json:"chat_id"`
	} `json:"telegram"`
	HTTP struct {
		Enabled bool   `json:"enabled"`
		Listen  string `json:"listen"`
	} `json:"http"`
}

// Load reads the JSON config file at path and applies environment overrides
// for secrets. A missing or malformed file is an error; no validation beyond
// defaulting happens here, downstream components validate what they need.
//
// A .env file in the working directory is loaded first, so overrides can
// live there instead of the process environment.
func Load(path string) (*Config, error) {
	// Best effort; absence of a .env file is not an error.
	godotenv.Load()

	cfg := &Config{}
	cfg.DataDir = filepath.Join(os.Getenv("HOME"), ".repowatch")
	cfg.LogLevel = "info"
	cfg.GitHub.FreqDays = 1
	cfg.GitHub.ExecTime = "08:00"
	cfg.LLM.ModelType = "openai"
	cfg.LLM.OpenAIModelName = "gpt-4o-mini"
	cfg.LLM.OpenAIBaseURL = llm.DefaultOpenAIBaseURL
	cfg.LLM.OllamaModelName = "llama3"
	cfg.LLM.OllamaAPIURL = "http://localhost:11434/api/chat"
	cfg.HTTP.Listen = "127.0.0.1:8790"

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if cfg.ReportTypes == nil {
		cfg.ReportTypes = []string{"github", "hacker_news"}
	}
	if cfg.GitHub.SubscriptionsFile == "" {
		cfg.GitHub.SubscriptionsFile = filepath.Join(cfg.DataDir, "subscriptions.json")
	}

	// Env overrides for secrets (highest precedence)
	if password := os.Getenv("EMAIL_PASSWORD"); password != "" {
		cfg.Email.Password = password
	}
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		cfg.LLM.OpenAIAPIKey = apiKey
	}
	if azureKey := os.Getenv("AZURE_OPENAI_KEY"); azureKey != "" {
		cfg.LLM.AzureAPIKey = azureKey
	}
	if tgToken := os.Getenv("TELEGRAM_BOT_TOKEN"); tgToken != "" {
		cfg.Telegram.Token = tgToken
	}

	return cfg, nil
}

// LLMConfig maps the loaded settings onto the adapter configuration,
// resolving the flat-versus-nested Azure keys (flat wins).
func (c *Config) LLMConfig() *llm.Config {
	out := &llm.Config{
		Backend: c.LLM.ModelType,
		OpenAI: llm.OpenAIConfig{
			BaseURL: c.LLM.OpenAIBaseURL,
			APIKey:  c.LLM.OpenAIAPIKey,
			Model:   c.LLM.OpenAIModelName,
		},
		Ollama: llm.OllamaConfig{
			URL:   c.LLM.OllamaAPIURL,
			Model: c.LLM.OllamaModelName,
		},
	}

	out.Azure = llm.AzureConfig{
		BaseURL:        firstNonEmpty(c.LLM.AzureBaseURL, c.LLM.Azure.BaseURL),
		DeploymentName: firstNonEmpty(c.LLM.AzureDeploymentName, c.LLM.Azure.DeploymentName),
		APIKey:         firstNonEmpty(c.LLM.AzureAPIKey, c.LLM.Azure.APIKey),
		APIVersion:     firstNonEmpty(c.LLM.AzureAPIVersion, c.LLM.Azure.APIVersion),
	}

	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Save writes the configuration as indented JSON, atomically via a temp file.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
