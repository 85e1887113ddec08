package hackernews

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchDigest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<a href="https://example.com/story">A big launch</a>
			<span>342 points</span>
		</body></html>`))
	}))
	defer server.Close()

	client := NewWithURL(server.URL)
	md, err := client.FetchDigest(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(md, "A big launch") {
		t.Errorf("expected story title in markdown, got:\n%s", md)
	}
	if strings.Contains(md, "<a href") {
		t.Errorf("expected HTML converted to markdown, got:\n%s", md)
	}
}

func TestFetchDigestHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewWithURL(server.URL)
	if _, err := client.FetchDigest(context.Background()); err == nil {
		t.Fatal("expected error for 503 response")
	}
}
