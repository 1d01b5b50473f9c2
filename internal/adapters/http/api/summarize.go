package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/patman77/NeuroNarrative/internal/domain/summary"
)

// SummarizeHandler exercises the completion backend with ad-hoc text,
// bypassing the signal pipeline. Useful for checking the model and prompt
// before analyzing a recording.
type SummarizeHandler struct {
	summarizer summary.Summarizer
}

// NewSummarizeHandler creates a new summarize handler.
func NewSummarizeHandler(s summary.Summarizer) *SummarizeHandler {
	return &SummarizeHandler{summarizer: s}
}

type summarizeRequest struct {
	Text string `json:"text"`
}

type summarizeResponse struct {
	Summary *string `json:"summary"`
	ID      string  `json:"id"`
}

// HandleSummarize handles POST /api/summaries/test.
func (h *SummarizeHandler) HandleSummarize(w http.ResponseWriter, r *http.Request) {
	const op = "api.summaries_test"
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethod)
		return
	}
	if h.summarizer == nil {
		writeError(w, http.StatusServiceUnavailable, "summarizer_disabled", errors.New("summarizer is disabled"))
		return
	}

	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: missing text", op, ErrBadRequest))
		return
	}

	s, err := h.summarizer.Summarize(r.Context(), req.Text)
	if err != nil {
		writeError(w, http.StatusBadGateway, "summarizer_error", fmt.Errorf("%w: %w", ErrUpstream, err))
		return
	}

	writeJSON(w, http.StatusOK, summarizeResponse{Summary: s, ID: uuid.New().String()})
}
