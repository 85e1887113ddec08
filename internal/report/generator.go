package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/user/repowatch/internal/github"
)

// maxConcurrentFetches bounds parallel GitHub requests during one run.
const maxConcurrentFetches = 4

// TextGenerator produces report text from a system prompt and user content.
// Satisfied by *llm.Generator.
type TextGenerator interface {
	GenerateReport(ctx context.Context, systemPrompt, userContent string) (string, error)
}

// ProgressFetcher retrieves one repository's recent activity. Satisfied by
// *github.Client.
type ProgressFetcher interface {
	FetchProgress(ctx context.Context, repo string, since time.Time) (*github.Progress, error)
}

// DigestFetcher retrieves the Hacker News front page as markdown. Satisfied
// by *hackernews.Client.
type DigestFetcher interface {
	FetchDigest(ctx context.Context) (string, error)
}

// SubscriptionLister returns the repos to report on. Satisfied by
// *subscription.Store.
type SubscriptionLister interface {
	Enabled() ([]string, error)
}

// Generator runs the full pipeline for one report: fetch raw activity, trim
// it to the token budget, and have the LLM write it up.
type Generator struct {
	llm      TextGenerator
	gh       ProgressFetcher
	hn       DigestFetcher
	subs     SubscriptionLister
	store    *Store
	trimmer  *trimmer
	freqDays int
}

// NewGenerator wires the report pipeline. model selects the tokenizer used
// for input trimming. freqDays is the reporting window in days.
func NewGenerator(textGen TextGenerator, gh ProgressFetcher, hn DigestFetcher, subs SubscriptionLister, store *Store, model string, freqDays int) (*Generator, error) {
	tr, err := newTrimmer(model, maxInputTokens)
	if err != nil {
		return nil, err
	}
	if freqDays < 1 {
		freqDays = 1
	}
	return &Generator{
		llm:      textGen,
		gh:       gh,
		hn:       hn,
		subs:     subs,
		store:    store,
		trimmer:  tr,
		freqDays: freqDays,
	}, nil
}

// Run generates, saves, and returns one report of the given type.
func (g *Generator) Run(ctx context.Context, reportType string) (*Report, error) {
	systemPrompt := SystemPrompt(reportType)
	if systemPrompt == "" {
		return nil, fmt.Errorf("unknown report type: %s", reportType)
	}

	var userContent, title string
	var err error
	switch reportType {
	case TypeGitHub:
		userContent, err = g.githubContent(ctx)
		title = fmt.Sprintf("GitHub progress report (%s)", time.Now().Format("2006-01-02"))
	case TypeHackerNews:
		userContent, err = g.hn.FetchDigest(ctx)
		title = fmt.Sprintf("Hacker News briefing (%s)", time.Now().Format("2006-01-02"))
	}
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(userContent) == "" {
		return nil, fmt.Errorf("no content to report for type %s", reportType)
	}

	text, err := g.llm.GenerateReport(ctx, systemPrompt, g.trimmer.Trim(userContent))
	if err != nil {
		return nil, err
	}

	rep := newReport(reportType, title, text)
	if g.store != nil {
		if err := g.store.Save(rep); err != nil {
			return nil, fmt.Errorf("save report: %w", err)
		}
	}

	slog.Info("report run complete", "type", reportType, "id", rep.ID, "chars", len(rep.Content))
	return rep, nil
}

// githubContent fetches every enabled subscription concurrently and
// concatenates the per-repo digests in subscription order.
func (g *Generator) githubContent(ctx context.Context) (string, error) {
	repos, err := g.subs.Enabled()
	if err != nil {
		return "", fmt.Errorf("list subscriptions: %w", err)
	}
	if len(repos) == 0 {
		return "", fmt.Errorf("no enabled subscriptions")
	}

	since := time.Now().AddDate(0, 0, -g.freqDays)
	digests := make([]string, len(repos))

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(maxConcurrentFetches)
	for i, repo := range repos {
		grp.Go(func() error {
			progress, err := g.gh.FetchProgress(grpCtx, repo, since)
			if err != nil {
				return err
			}
			digests[i] = progress.Markdown()
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return "", err
	}

	return strings.Join(digests, "\n\n"), nil
}
