package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/repowatch/internal/config"
)

func init() {
	rootCmd.AddCommand(setupCmd)
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Seed an empty config file on first run so Load succeeds.
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			if err := os.MkdirAll(filepath.Dir(cfgPath), 0755); err == nil {
				os.WriteFile(cfgPath, []byte("{}\n"), 0644)
			}
		}

		cfg := loadConfig()
		scanner := bufio.NewScanner(os.Stdin)

		fmt.Println("Repowatch Setup Wizard")
		fmt.Println("Press Enter to accept the default value shown in brackets.")
		fmt.Println()

		cfg.LLM.ModelType = prompt(scanner, "LLM backend (openai, azure, ollama)", cfg.LLM.ModelType)

		switch strings.ToLower(cfg.LLM.ModelType) {
		case "openai":
			cfg.LLM.OpenAIModelName = prompt(scanner, "OpenAI model name", cfg.LLM.OpenAIModelName)
			cfg.LLM.OpenAIAPIKey = prompt(scanner, "OpenAI API key", cfg.LLM.OpenAIAPIKey)
		case "azure", "azure_openai":
			cfg.LLM.AzureBaseURL = prompt(scanner, "Azure base URL", cfg.LLM.AzureBaseURL)
			cfg.LLM.AzureDeploymentName = prompt(scanner, "Azure deployment name", cfg.LLM.AzureDeploymentName)
			cfg.LLM.AzureAPIKey = prompt(scanner, "Azure API key", cfg.LLM.AzureAPIKey)
		case "ollama":
			cfg.LLM.OllamaModelName = prompt(scanner, "Ollama model name", cfg.LLM.OllamaModelName)
			cfg.LLM.OllamaAPIURL = prompt(scanner, "Ollama API URL", cfg.LLM.OllamaAPIURL)
		}

		cfg.GitHub.Token = prompt(scanner, "GitHub token", cfg.GitHub.Token)
		cfg.GitHub.ExecTime = prompt(scanner, "Daily report time (HH:MM)", cfg.GitHub.ExecTime)
		freqStr := prompt(scanner, "Report frequency in days", strconv.Itoa(cfg.GitHub.FreqDays))
		if n, err := strconv.Atoi(freqStr); err == nil && n > 0 {
			cfg.GitHub.FreqDays = n
		}

		cfg.Slack.WebhookURL = prompt(scanner, "Slack webhook URL (optional)", cfg.Slack.WebhookURL)
		cfg.Telegram.Token = prompt(scanner, "Telegram bot token (optional)", cfg.Telegram.Token)

		scrubEnvSecrets(cfg)
		if err := config.Save(cfgPath, cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		fmt.Println()
		fmt.Println("Configuration saved to", cfgPath)
		return nil
	},
}

// scrubEnvSecrets blanks secrets that Load pulled from the environment so
// the wizard does not persist them into the config file. Values the user
// typed at the prompt differ from the env value and are kept.
func scrubEnvSecrets(cfg *config.Config) {
	if cfg.Email.Password != "" && cfg.Email.Password == os.Getenv("EMAIL_PASSWORD") {
		cfg.Email.Password = ""
	}
	if cfg.GitHub.Token != "" && cfg.GitHub.Token == os.Getenv("GITHUB_TOKEN") {
		cfg.GitHub.Token = ""
	}
	if cfg.LLM.OpenAIAPIKey != "" && cfg.LLM.OpenAIAPIKey == os.Getenv("OPENAI_API_KEY") {
		cfg.LLM.OpenAIAPIKey = ""
	}
	if cfg.LLM.AzureAPIKey != "" && cfg.LLM.AzureAPIKey == os.Getenv("AZURE_OPENAI_KEY") {
		cfg.LLM.AzureAPIKey = ""
	}
	if cfg.Telegram.Token != "" && cfg.Telegram.Token == os.Getenv("TELEGRAM_BOT_TOKEN") {
		cfg.Telegram.Token = ""
	}
}

// prompt displays a labeled prompt with a default value and reads user input.
// If the user enters nothing, the default is returned.
func prompt(scanner *bufio.Scanner, label, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s [%s]: ", label, defaultVal)
	} else {
		fmt.Printf("%s: ", label)
	}
	if scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input != "" {
			return input
		}
	}
	return defaultVal
}
