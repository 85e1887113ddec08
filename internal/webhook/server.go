// internal/webhook/server.go
package webhook

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/user/repowatch/internal/report"
)

// RunFunc generates one report of the given type.
type RunFunc func(reportType string) (*report.Report, error)

// Server is a lightweight HTTP handler for triggering and reading reports.
type Server struct {
	run   RunFunc
	store *report.Store
	mux   *http.ServeMux
}

// NewServer creates a webhook Server with the given run callback and report store.
func NewServer(run RunFunc, store *report.Store) *Server {
	s := &Server{
		run:   run,
		store: store,
		mux:   http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /report", s.handleReport)
	s.mux.HandleFunc("GET /api/reports", s.handleListReports)
	s.mux.HandleFunc("GET /api/reports/", s.handleGetReport)
	return s
}

// ServeHTTP delegates to the internal mux, implementing http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// reportRequest is the JSON body for POST /report.
type reportRequest struct {
	Type string `json:"type"`
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}
	if req.Type == "" {
		http.Error(w, `{"error":"type is required"}`, http.StatusBadRequest)
		return
	}

	rep, err := s.run(req.Type)
	if err != nil {
		slog.Error("webhook report run failed", "type", req.Type, "error", err)
		http.Error(w, `{"error":"report generation failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rep)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.store.List()
	if err != nil {
		slog.Error("list reports failed", "error", err)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}

	// Omit bodies in the listing
	type summary struct {
		ID        string `json:"id"`
		Type      string `json:"type"`
		Title     string `json:"title"`
		CreatedAt string `json:"created_at"`
	}
	out := make([]summary, 0, len(reports))
	for _, rep := range reports {
		out = append(out, summary{
			ID:        rep.ID,
			Type:      rep.Type,
			Title:     rep.Title,
			CreatedAt: rep.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/reports/")
	if id == "" {
		http.Error(w, `{"error":"report id is required"}`, http.StatusBadRequest)
		return
	}

	rep, err := s.store.Get(id)
	if err != nil {
		http.Error(w, `{"error":"report not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rep)
}
