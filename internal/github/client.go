package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultAPIBaseURL is the GitHub REST API root.
const DefaultAPIBaseURL = "https://api.github.com"

// Client fetches recent repository activity from the GitHub REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a GitHub client. token may be empty for unauthenticated access
// (subject to much lower rate limits).
func New(token string) *Client {
	return &Client{
		baseURL: DefaultAPIBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewWithBaseURL creates a client against a non-default API root. Used by
// tests and GitHub Enterprise setups.
func NewWithBaseURL(token, baseURL string) *Client {
	c := New(token)
	c.baseURL = baseURL
	return c
}

// APIError is a non-200 reply from the GitHub API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API error (status %d): %s", e.StatusCode, e.Body)
}

// isUnprocessable reports whether err is a 422 reply, which GitHub returns
// for repositories it has not indexed.
func isUnprocessable(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnprocessableEntity
}

// Issue is a closed issue returned by the issues endpoint.
type Issue struct {
	Number   int    `json:"number"`
	Title    string `json:"title"`
	HTMLURL  string `json:"html_url"`
	ClosedAt string `json:"closed_at"`

	// PullRequest is non-nil when the "issue" is actually a pull request;
	// the issues endpoint returns both.
	PullRequest *struct{} `json:"pull_request"`
}

// PullRequest is a closed pull request returned by the pulls endpoint.
type PullRequest struct {
	Number   int        `json:"number"`
	Title    string     `json:"title"`
	HTMLURL  string     `json:"html_url"`
	MergedAt *time.Time `json:"merged_at"`
}

// Progress is one repository's activity within the reporting window.
type Progress struct {
	Repo         string
	Since        time.Time
	Until        time.Time
	ClosedIssues []Issue
	MergedPulls  []PullRequest
}

// FetchProgress collects issues closed and pull requests merged in the given
// repository since the given time.
func (c *Client) FetchProgress(ctx context.Context, repo string, since time.Time) (*Progress, error) {
	progress := &Progress{
		Repo:  repo,
		Since: since,
		Until: time.Now(),
	}

	issues, err := c.fetchClosedIssues(ctx, repo, since)
	if err != nil {
		return nil, fmt.Errorf("fetch closed issues for %s: %w", repo, err)
	}
	progress.ClosedIssues = issues

	pulls, err := c.fetchMergedPulls(ctx, repo, since)
	if err != nil {
		return nil, fmt.Errorf("fetch merged pulls for %s: %w", repo, err)
	}
	progress.MergedPulls = pulls

	return progress, nil
}

func (c *Client) fetchClosedIssues(ctx context.Context, repo string, since time.Time) ([]Issue, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/issues?%s", c.baseURL, repo, url.Values{
		"state":    {"closed"},
		"since":    {since.UTC().Format(time.RFC3339)},
		"per_page": {"100"},
	}.Encode())

	var all []Issue
	if err := c.getJSON(ctx, endpoint, &all); err != nil {
		if isUnprocessable(err) {
			return nil, nil
		}
		return nil, err
	}

	// The issues endpoint mixes in pull requests; keep real issues only.
	issues := all[:0]
	for _, issue := range all {
		if issue.PullRequest == nil {
			issues = append(issues, issue)
		}
	}
	return issues, nil
}

func (c *Client) fetchMergedPulls(ctx context.Context, repo string, since time.Time) ([]PullRequest, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/pulls?%s", c.baseURL, repo, url.Values{
		"state":     {"closed"},
		"sort":      {"updated"},
		"direction": {"desc"},
		"per_page":  {"100"},
	}.Encode())

	var all []PullRequest
	if err := c.getJSON(ctx, endpoint, &all); err != nil {
		if isUnprocessable(err) {
			return nil, nil
		}
		return nil, err
	}

	var merged []PullRequest
	for _, pr := range all {
		if pr.MergedAt != nil && pr.MergedAt.After(since) {
			merged = append(merged, pr)
		}
	}
	return merged, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "repowatch/1.0")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
