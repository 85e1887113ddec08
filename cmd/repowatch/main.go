package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/repowatch/internal/config"
	"github.com/user/repowatch/internal/github"
	"github.com/user/repowatch/internal/hackernews"
	"github.com/user/repowatch/internal/notifier"
	"github.com/user/repowatch/internal/report"
	"github.com/user/repowatch/internal/subscription"
	"github.com/user/repowatch/pkg/llm"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "repowatch",
	Short: "Watch GitHub repositories and generate LLM progress reports",
}

func init() {
	defaultPath := filepath.Join(os.Getenv("HOME"), ".repowatch", "config.json")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultPath, "config file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig loads the config file or exits; a missing or malformed file is
// fatal.
func loadConfig() *config.Config {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// setupLogging configures the default slog logger from the config.
func setupLogging(cfg *config.Config) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// buildPipeline wires the report generator and its stores from the config.
func buildPipeline(cfg *config.Config) (*report.Generator, *report.Store, error) {
	textGen, err := llm.New(cfg.LLMConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("create LLM adapter: %w", err)
	}

	subs := subscription.NewStore(cfg.GitHub.SubscriptionsFile)
	ghClient := github.New(cfg.GitHub.Token)
	hnClient := hackernews.New()
	store := report.NewStore(filepath.Join(cfg.DataDir, "reports"))

	gen, err := report.NewGenerator(textGen, ghClient, hnClient, subs, store,
		cfg.LLM.OpenAIModelName, cfg.GitHub.FreqDays)
	if err != nil {
		return nil, nil, fmt.Errorf("create report generator: %w", err)
	}
	return gen, store, nil
}

// buildNotifiers registers every channel the config enables.
func buildNotifiers(cfg *config.Config) *notifier.Registry {
	reg := notifier.NewRegistry()

	if cfg.Email.SMTPServer != "" && cfg.Email.From != "" && len(cfg.Email.To) > 0 {
		reg.Register(notifier.NewEmail(cfg.Email.SMTPServer, cfg.Email.SMTPPort,
			cfg.Email.From, cfg.Email.To, cfg.Email.Password))
	}
	if cfg.Slack.WebhookURL != "" {
		reg.Register(notifier.NewSlack(cfg.Slack.WebhookURL))
	}
	if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
		tg, err := notifier.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			slog.Error("failed to create telegram notifier", "error", err)
		} else {
			reg.Register(tg)
		}
	}

	return reg
}
