package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Error("missing or invalid auth header")
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("expected path '/v1/chat/completions', got %q", r.URL.Path)
		}

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "R1"}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := newOpenAIClient(OpenAIConfig{
		BaseURL: server.URL + "/v1",
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
	})

	text, err := client.Complete(context.Background(), ReportMessages("sys", "user"))
	if err != nil {
		t.Fatal(err)
	}
	if text != "R1" {
		t.Errorf("expected 'R1', got %q", text)
	}
}

func TestOpenAIRequestBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var reqBody map[string]any
		json.Unmarshal(body, &reqBody)

		if reqBody["model"] != "gpt-4o-mini" {
			t.Errorf("expected model 'gpt-4o-mini', got %v", reqBody["model"])
		}

		messages, ok := reqBody["messages"].([]any)
		if !ok || len(messages) != 2 {
			t.Fatalf("expected 2 messages, got %v", reqBody["messages"])
		}
		second := messages[1].(map[string]any)
		if second["role"] != "user" || second["content"] != "the raw updates" {
			t.Errorf("unexpected second message: %v", second)
		}

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "ok"}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := newOpenAIClient(OpenAIConfig{BaseURL: server.URL, APIKey: "k", Model: "gpt-4o-mini"})
	if _, err := client.Complete(context.Background(), ReportMessages("sys", "the raw updates")); err != nil {
		t.Fatal(err)
	}
}

func TestOpenAIAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer server.Close()

	client := newOpenAIClient(OpenAIConfig{BaseURL: server.URL, APIKey: "bad-key", Model: "gpt-4"})
	_, err := client.Complete(context.Background(), ReportMessages("sys", "user"))

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %T: %v", err, err)
	}
	if transportErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", transportErr.StatusCode)
	}
}

func TestOpenAIEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := newOpenAIClient(OpenAIConfig{BaseURL: server.URL, APIKey: "k", Model: "gpt-4"})
	_, err := client.Complete(context.Background(), ReportMessages("sys", "user"))

	var respErr *ResponseError
	if !errors.As(err, &respErr) {
		t.Fatalf("expected *ResponseError, got %T: %v", err, err)
	}
}

func TestOpenAIDefaultBaseURL(t *testing.T) {
	client := newOpenAIClient(OpenAIConfig{APIKey: "k", Model: "gpt-4"})
	if client.config.BaseURL != DefaultOpenAIBaseURL {
		t.Errorf("expected default base URL, got %q", client.config.BaseURL)
	}
}
