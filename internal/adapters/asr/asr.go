// Package asr integrates the external speech-recognition stage. The
// recognizer itself is an external collaborator; this package only defines
// the seam and two small implementations.
package asr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/patman77/NeuroNarrative/internal/domain/model"
)

// ErrTranscript marks unreadable transcript word files.
var ErrTranscript = errors.New("read transcript failed")

// Transcriber produces timed words for a recording. Implementations may
// shell out, call a service, or read precomputed results; the pipeline only
// sees the word list, which may be empty.
type Transcriber interface {
	Transcribe(ctx context.Context, wavPath string) ([]model.TranscribedWord, error)
}

// Noop returns an empty transcript. It stands in for the recognizer so the
// rest of the pipeline can run without one.
type Noop struct{}

func (Noop) Transcribe(_ context.Context, _ string) ([]model.TranscribedWord, error) {
	return nil, nil
}

// WordFile reads precomputed whisper-style word timings from a JSON file
// sitting next to the recording: <name>.words.json, an array of
// {text, start, end, confidence} objects. A recording without a word file
// yields an empty transcript, not an error.
type WordFile struct{}

func (WordFile) Transcribe(_ context.Context, wavPath string) ([]model.TranscribedWord, error) {
	path := strings.TrimSuffix(wavPath, ".wav") + ".words.json"
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrTranscript, path, err)
	}

	var words []model.TranscribedWord
	if err := json.Unmarshal(raw, &words); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTranscript, path, err)
	}
	return words, nil
}
