package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/patman77/NeuroNarrative/internal/adapters/storage"
	"github.com/patman77/NeuroNarrative/pkg/metrics"
)

// Accepted content types per part.
var (
	csvContentTypes = map[string]bool{
		"text/csv":                 true,
		"application/vnd.ms-excel": true,
	}
	wavContentTypes = map[string]bool{
		"audio/wav":      true,
		"audio/x-wav":    true,
		"audio/vnd.wave": true,
	}
)

// UploadHandler stores a GSR CSV and its aligned WAV recording.
type UploadHandler struct {
	store    *storage.Store
	maxBytes int64
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(store *storage.Store, maxBytes int64) *UploadHandler {
	return &UploadHandler{store: store, maxBytes: maxBytes}
}

type uploadResponse struct {
	CSVPath string `json:"csv_path"`
	WAVPath string `json:"wav_path"`
}

// HandleUpload handles POST /api/upload: multipart form with a "gsr" CSV
// part and an "audio" WAV part. Both files are content-addressed on disk;
// the returned paths feed /api/analyze.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	const op = "api.upload"
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethod)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload_too_large", fmt.Errorf("%s: %w", op, ErrUploadTooBig))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}

	csvPath, err := h.savePart(r, "gsr", ".csv", csvContentTypes, "GSR file must be CSV")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	wavPath, err := h.savePart(r, "audio", ".wav", wavContentTypes, "audio file must be WAV")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{CSVPath: csvPath, WAVPath: wavPath})
}

func (h *UploadHandler) savePart(r *http.Request, field, ext string, allowed map[string]bool, typeMsg string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("%w: missing %q part: %w", ErrBadRequest, field, err)
	}
	defer file.Close()

	if ct := partContentType(header); ct != "" && !allowed[ct] {
		return "", fmt.Errorf("%w: %s (got %s)", ErrBadRequest, typeMsg, ct)
	}

	path, err := h.store.Save(file, ext)
	if err != nil {
		return "", err
	}
	metrics.RecordUpload(header.Size)
	return path, nil
}

func partContentType(header *multipart.FileHeader) string {
	if header == nil {
		return ""
	}
	return header.Header.Get("Content-Type")
}
