package webhook

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/user/repowatch/internal/report"
)

func newTestServer(t *testing.T, run RunFunc) (*Server, *report.Store) {
	t.Helper()
	store := report.NewStore(t.TempDir())
	if run == nil {
		run = func(reportType string) (*report.Report, error) {
			return &report.Report{ID: "r1", Type: reportType, Title: "t", Content: "c", CreatedAt: time.Now()}, nil
		}
	}
	return NewServer(run, store), store
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["status"] != "ok" {
		t.Errorf("unexpected health body: %v", body)
	}
}

func TestTriggerReport(t *testing.T) {
	var gotType string
	srv, _ := newTestServer(t, func(reportType string) (*report.Report, error) {
		gotType = reportType
		return &report.Report{ID: "r1", Type: reportType, Content: "done"}, nil
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader(`{"type":"github"}`))
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotType != "github" {
		t.Errorf("expected run with type github, got %q", gotType)
	}
	var rep report.Report
	json.Unmarshal(rec.Body.Bytes(), &rep)
	if rep.Content != "done" {
		t.Errorf("unexpected response report: %+v", rep)
	}
}

func TestTriggerReportBadRequest(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	for _, body := range []string{"", "{not json", `{}`} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader(body))
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestTriggerReportRunError(t *testing.T) {
	srv, _ := newTestServer(t, func(reportType string) (*report.Report, error) {
		return nil, fmt.Errorf("backend down")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader(`{"type":"github"}`))
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestListAndGetReports(t *testing.T) {
	srv, store := newTestServer(t, nil)

	rep := &report.Report{ID: "abc", Type: "github", Title: "T", Content: "body", CreatedAt: time.Now()}
	if err := store.Save(rep); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list []map[string]any
	json.Unmarshal(rec.Body.Bytes(), &list)
	if len(list) != 1 || list[0]["id"] != "abc" {
		t.Errorf("unexpected listing: %v", list)
	}
	if _, hasContent := list[0]["content"]; hasContent {
		t.Error("listing should omit report bodies")
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/abc", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got report.Report
	json.Unmarshal(rec.Body.Bytes(), &got)
	if got.Content != "body" {
		t.Errorf("unexpected report body: %+v", got)
	}
}

func TestGetReportNotFound(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
