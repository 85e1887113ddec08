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

func newTestAzureClient(t *testing.T, baseURL string) *azureClient {
	t.Helper()
	client, err := newAzureClient(AzureConfig{
		BaseURL:        baseURL,
		DeploymentName: "gpt4-deploy",
		APIKey:         "azure-key",
	})
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestAzureComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openai/deployments/gpt4-deploy/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("api-version"); got != DefaultAzureAPIVersion {
			t.Errorf("expected api-version %q, got %q", DefaultAzureAPIVersion, got)
		}
		if r.Header.Get("api-key") != "azure-key" {
			t.Error("missing or invalid api-key header")
		}

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "R1"}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := newTestAzureClient(t, server.URL)
	text, err := client.Complete(context.Background(), ReportMessages("sys", "user"))
	if err != nil {
		t.Fatal(err)
	}
	if text != "R1" {
		t.Errorf("expected 'R1', got %q", text)
	}
}

func TestAzureRequestBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var reqBody map[string]any
		json.Unmarshal(body, &reqBody)

		if reqBody["max_tokens"] != float64(4000) {
			t.Errorf("expected max_tokens 4000, got %v", reqBody["max_tokens"])
		}
		if reqBody["temperature"] != 0.7 {
			t.Errorf("expected temperature 0.7, got %v", reqBody["temperature"])
		}
		if reqBody["top_p"] != float64(1) {
			t.Errorf("expected top_p 1, got %v", reqBody["top_p"])
		}

		messages, ok := reqBody["messages"].([]any)
		if !ok || len(messages) != 2 {
			t.Fatalf("expected 2 messages, got %v", reqBody["messages"])
		}
		first := messages[0].(map[string]any)
		second := messages[1].(map[string]any)
		if first["role"] != "system" {
			t.Errorf("expected first message role 'system', got %v", first["role"])
		}
		if second["role"] != "user" || second["content"] != "verbatim user content" {
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

	client := newTestAzureClient(t, server.URL)
	if _, err := client.Complete(context.Background(), ReportMessages("sys", "verbatim user content")); err != nil {
		t.Fatal(err)
	}
}

func TestAzureEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := newTestAzureClient(t, server.URL)
	_, err := client.Complete(context.Background(), ReportMessages("sys", "user"))

	var respErr *ResponseError
	if !errors.As(err, &respErr) {
		t.Fatalf("expected *ResponseError for empty choices, got %T: %v", err, err)
	}
}

func TestAzureMissingContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant"}}]}`))
	}))
	defer server.Close()

	client := newTestAzureClient(t, server.URL)
	_, err := client.Complete(context.Background(), ReportMessages("sys", "user"))

	var respErr *ResponseError
	if !errors.As(err, &respErr) {
		t.Fatalf("expected *ResponseError for missing content, got %T: %v", err, err)
	}
}

func TestAzureHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	client := newTestAzureClient(t, server.URL)
	_, err := client.Complete(context.Background(), ReportMessages("sys", "user"))

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %T: %v", err, err)
	}
	if transportErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", transportErr.StatusCode)
	}
}

func TestAzureBaseURLTrailingSlash(t *testing.T) {
	client, err := newAzureClient(AzureConfig{
		BaseURL:        "https://x.openai.azure.com/",
		DeploymentName: "d",
		APIKey:         "k",
	})
	if err != nil {
		t.Fatal(err)
	}
	if client.config.BaseURL != "https://x.openai.azure.com" {
		t.Errorf("expected trailing slash stripped, got %q", client.config.BaseURL)
	}
}
