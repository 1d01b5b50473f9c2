package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/patman77/NeuroNarrative/internal/adapters/audio"
	"github.com/patman77/NeuroNarrative/internal/adapters/storage"
	"github.com/patman77/NeuroNarrative/internal/app"
	"github.com/patman77/NeuroNarrative/internal/domain/signal"
	"github.com/patman77/NeuroNarrative/internal/domain/summary"
)

// AnalyzeHandler runs the analysis pipeline over previously uploaded files.
type AnalyzeHandler struct {
	deps     Dependencies
	store    *storage.Store
	defaults Defaults
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(deps Dependencies, store *storage.Store, defaults Defaults) *AnalyzeHandler {
	return &AnalyzeHandler{deps: deps, store: store, defaults: defaults}
}

// analyzeRequest mirrors the public analyze contract. Window fields are
// pointers so that absent values pick up the configured defaults while an
// explicit zero stays zero.
type analyzeRequest struct {
	CSVPath            string   `json:"csv_path"`
	WAVPath            string   `json:"wav_path"`
	RulesetName        string   `json:"ruleset_name"`
	PreEventWindowSec  *float64 `json:"pre_event_window_sec"`
	PostEventWindowSec *float64 `json:"post_event_window_sec"`
}

func (a analyzeRequest) validate() error {
	switch {
	case strings.TrimSpace(a.CSVPath) == "":
		return errors.New("missing csv_path")
	case strings.TrimSpace(a.WAVPath) == "":
		return errors.New("missing wav_path")
	}
	if a.PreEventWindowSec != nil && *a.PreEventWindowSec < 0 {
		return errors.New("pre_event_window_sec must not be negative")
	}
	if a.PostEventWindowSec != nil && *a.PostEventWindowSec < 0 {
		return errors.New("post_event_window_sec must not be negative")
	}
	return nil
}

// HandleAnalyze handles POST /api/analyze.
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "api.analyze"
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethod)
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}

	// Only paths handed out by /api/upload are accepted.
	for _, p := range []string{req.CSVPath, req.WAVPath} {
		if !h.store.Contains(p) {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: path outside upload dir", op, ErrBadRequest))
			return
		}
		if _, err := os.Stat(p); err != nil {
			writeError(w, http.StatusNotFound, "not_found", ErrUploadLost)
			return
		}
	}

	ruleset := req.RulesetName
	if ruleset == "" {
		ruleset = h.defaults.Ruleset
	}
	pre := h.defaults.PreEventWindowSec
	if req.PreEventWindowSec != nil {
		pre = *req.PreEventWindowSec
	}
	post := h.defaults.PostEventWindowSec
	if req.PostEventWindowSec != nil {
		post = *req.PostEventWindowSec
	}

	report, err := h.deps.Analyze(r.Context(), app.AnalyzeRequest{
		CSVPath:            req.CSVPath,
		WAVPath:            req.WAVPath,
		RulesetName:        ruleset,
		PreEventWindowSec:  pre,
		PostEventWindowSec: post,
	})
	if err != nil {
		status, code := classify(err)
		writeError(w, status, code, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// classify maps pipeline errors onto the API surface without exposing
// internal state beyond the failing stage.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, signal.ErrMissingColumn), errors.Is(err, signal.ErrBadInput):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, audio.ErrDecode):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, summary.ErrSummarize):
		return http.StatusBadGateway, "summarizer_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
