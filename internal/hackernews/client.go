package hackernews

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// DefaultFrontPageURL is the Hacker News front page.
const DefaultFrontPageURL = "https://news.ycombinator.com/"

const maxDigestChars = 50000

// Client fetches the Hacker News front page and converts it to markdown.
type Client struct {
	url        string
	httpClient *http.Client
}

// New creates a Hacker News client for the default front page.
func New() *Client {
	return &Client{
		url: DefaultFrontPageURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewWithURL creates a client against a non-default URL. Used by tests.
func NewWithURL(url string) *Client {
	c := New()
	c.url = url
	return c
}

// FetchDigest downloads the front page and returns it as markdown, truncated
// to a size the LLM input can absorb.
func (c *Client) FetchDigest(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "repowatch/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch front page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	md, err := htmltomarkdown.ConvertString(string(body))
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}

	if len(md) > maxDigestChars {
		md = md[:maxDigestChars] + "\n\n[Content truncated]"
	}

	return md, nil
}
