package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/user/repowatch/internal/report"
)

// Slack posts reports to a Slack incoming webhook.
type Slack struct {
	webhookURL string
	httpClient *http.Client
}

// NewSlack creates a Slack notifier for the given incoming-webhook URL.
func NewSlack(webhookURL string) *Slack {
	return &Slack{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *Slack) Name() string { return "slack" }

// Send posts the report title and content as a single webhook message.
func (s *Slack) Send(ctx context.Context, rep *report.Report) error {
	payload, err := json.Marshal(map[string]string{
		"text": fmt.Sprintf("*%s*\n\n%s", rep.Title, rep.Content),
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook error (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}
