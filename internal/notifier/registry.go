// internal/notifier/registry.go
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/user/repowatch/internal/report"
)

// Notifier delivers a generated report over one channel.
type Notifier interface {
	Name() string
	Send(ctx context.Context, rep *report.Report) error
}

// Registry fans a report out to every registered channel. Channels are
// independent: one failing does not stop the others.
type Registry struct {
	mu        sync.RWMutex
	notifiers []Notifier
}

// NewRegistry creates an empty notifier registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a channel.
func (r *Registry) Register(n Notifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifiers = append(r.notifiers, n)
}

// Channels returns the names of all registered channels.
func (r *Registry) Channels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.notifiers))
	for i, n := range r.notifiers {
		names[i] = n.Name()
	}
	return names
}

// Notify sends the report on every channel concurrently and returns an error
// summarizing the channels that failed, if any.
func (r *Registry) Notify(ctx context.Context, rep *report.Report) error {
	r.mu.RLock()
	notifiers := make([]Notifier, len(r.notifiers))
	copy(notifiers, r.notifiers)
	r.mu.RUnlock()

	if len(notifiers) == 0 {
		slog.Warn("no notification channels configured", "report_id", rep.ID)
		return nil
	}

	var failedMu sync.Mutex
	var failed []string

	grp := &errgroup.Group{}
	for _, n := range notifiers {
		grp.Go(func() error {
			if err := n.Send(ctx, rep); err != nil {
				slog.Error("notification failed", "channel", n.Name(), "report_id", rep.ID, "error", err)
				failedMu.Lock()
				failed = append(failed, n.Name())
				failedMu.Unlock()
			}
			return nil
		})
	}
	grp.Wait()

	if len(failed) > 0 {
		return fmt.Errorf("notification failed on: %s", strings.Join(failed, ", "))
	}
	return nil
}
