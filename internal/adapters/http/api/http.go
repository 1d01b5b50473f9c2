// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/patman77/NeuroNarrative/internal/adapters/storage"
	"github.com/patman77/NeuroNarrative/internal/app"
	"github.com/patman77/NeuroNarrative/internal/domain/summary"
)

// Dependencies bundles what the handlers need from the application layer.
// An interface keeps the handler layer loosely coupled to the service.
type Dependencies interface {
	Analyze(ctx context.Context, req app.AnalyzeRequest) (*app.Report, error)
}

// Defaults carries request-level defaults sourced from configuration.
type Defaults struct {
	Ruleset            string
	PreEventWindowSec  float64
	PostEventWindowSec float64
	MaxUploadBytes     int64
}

// Server wires HTTP routes for the analysis API.
type Server struct {
	healthHandler    *HealthHandler
	uploadHandler    *UploadHandler
	analyzeHandler   *AnalyzeHandler
	summarizeHandler *SummarizeHandler
}

// NewServer creates an API server with all handlers.
func NewServer(deps Dependencies, summarizer summary.Summarizer, store *storage.Store, defaults Defaults) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		uploadHandler:    NewUploadHandler(store, defaults.MaxUploadBytes),
		analyzeHandler:   NewAnalyzeHandler(deps, store, defaults),
		summarizeHandler: NewSummarizeHandler(summarizer),
	}
}

// Register attaches all routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/api/upload", MetricsMiddleware(s.uploadHandler.HandleUpload, "upload"))
	mux.HandleFunc("/api/analyze", MetricsMiddleware(s.analyzeHandler.HandleAnalyze, "analyze"))
	mux.HandleFunc("/api/summaries/test", MetricsMiddleware(s.summarizeHandler.HandleSummarize, "summaries_test"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
