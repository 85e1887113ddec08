package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/user/repowatch/internal/report"
	"github.com/user/repowatch/internal/scheduler"
	"github.com/user/repowatch/internal/webhook"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the repowatch daemon",
	RunE:  runServe,
}

func writePIDFile(dataDir string) (string, error) {
	pidPath := filepath.Join(dataDir, "repowatch.pid")
	pid := os.Getpid()
	if err := os.WriteFile(pidPath, []byte(strconv.Itoa(pid)+"\n"), 0644); err != nil {
		return "", fmt.Errorf("write PID file: %w", err)
	}
	return pidPath, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	setupLogging(cfg)

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// Write PID file
	pidPath, err := writePIDFile(cfg.DataDir)
	if err != nil {
		return err
	}
	defer os.Remove(pidPath)

	gen, store, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	notifiers := buildNotifiers(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.Info("repowatch started",
		"data_dir", cfg.DataDir,
		"log_level", cfg.LogLevel,
		"backend", cfg.LLM.ModelType,
		"report_types", cfg.ReportTypes,
		"channels", notifiers.Channels(),
		"pid_file", pidPath,
	)

	// Helper: run one report and fan it out.
	runReport := func(reportType string) (*report.Report, error) {
		rep, err := gen.Run(ctx, reportType)
		if err != nil {
			return nil, err
		}
		if err := notifiers.Notify(ctx, rep); err != nil {
			slog.Error("report delivery incomplete", "type", reportType, "error", err)
		}
		return rep, nil
	}

	// Scheduler
	sched, err := scheduler.New(cfg.GitHub.ExecTime, cfg.GitHub.FreqDays, cfg.ReportTypes, func(reportType string) {
		if _, err := runReport(reportType); err != nil {
			slog.Error("scheduled report run failed", "type", reportType, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	if err := sched.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	// Webhook HTTP server
	if cfg.HTTP.Enabled {
		webhookSrv := webhook.NewServer(runReport, store)
		httpServer := &http.Server{
			Addr:    cfg.HTTP.Listen,
			Handler: webhookSrv,
		}
		go func() {
			slog.Info("webhook server started", "listen", cfg.HTTP.Listen)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("webhook server error", "error", err)
			}
		}()
		go func() {
			<-ctx.Done()
			httpServer.Close()
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for {
		sig := <-sigChan
		if sig == syscall.SIGHUP {
			slog.Info("received SIGHUP, restarting")
			execPath, err := os.Executable()
			if err != nil {
				slog.Error("failed to get executable path", "error", err)
				continue
			}
			// Clean up PID file before re-exec
			os.Remove(pidPath)
			if err := syscall.Exec(execPath, os.Args, os.Environ()); err != nil {
				slog.Error("failed to re-exec", "error", err)
				// Re-write PID file since we failed to re-exec
				if _, writeErr := writePIDFile(cfg.DataDir); writeErr != nil {
					slog.Error("failed to re-write PID file", "error", writeErr)
				}
				continue
			}
		}
		// SIGINT or SIGTERM
		slog.Info("shutting down", "signal", sig)
		return nil
	}
}
