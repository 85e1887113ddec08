// internal/scheduler/scheduler.go
package scheduler

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
)

// Handler is the callback invoked when a scheduled run fires, once per
// report type.
type Handler func(reportType string)

// Scheduler fires report runs on a cron schedule derived from the configured
// execution time and frequency.
type Scheduler struct {
	spec        string
	reportTypes []string
	handler     Handler
	cron        *cron.Cron
}

// New creates a Scheduler that fires at execTime ("HH:MM") every freqDays
// days for each of the given report types.
func New(execTime string, freqDays int, reportTypes []string, handler Handler) (*Scheduler, error) {
	spec, err := cronSpec(execTime, freqDays)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		spec:        spec,
		reportTypes: reportTypes,
		handler:     handler,
		cron:        cron.New(),
	}, nil
}

// Spec returns the derived cron expression.
func (s *Scheduler) Spec() string {
	return s.spec
}

// Start registers the cron entry and starts the ticker.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		for _, reportType := range s.reportTypes {
			slog.Info("cron firing report run", "type", reportType, "spec", s.spec)
			s.handler(reportType)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	slog.Info("scheduler started", "spec", s.spec, "report_types", strings.Join(s.reportTypes, ","))
	return nil
}

// Stop stops the cron ticker.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// cronSpec converts an "HH:MM" execution time and a day frequency into a
// standard 5-field cron expression.
func cronSpec(execTime string, freqDays int) (string, error) {
	parts := strings.Split(execTime, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid execution time %q: expected HH:MM", execTime)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in execution time %q", execTime)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in execution time %q", execTime)
	}

	if freqDays <= 1 {
		return fmt.Sprintf("%d %d * * *", minute, hour), nil
	}
	return fmt.Sprintf("%d %d */%d * *", minute, hour, freqDays), nil
}
