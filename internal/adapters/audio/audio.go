// Package audio reads recording metadata from WAV files. Audio is only a
// metadata provider here; samples are never kept.
package audio

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/wav"

	"github.com/patman77/NeuroNarrative/internal/domain/model"
)

// ErrDecode marks files that cannot be decoded as WAV.
var ErrDecode = errors.New("decode audio failed")

// ReadMetadata decodes the WAV header and PCM length of the file at path
// and reports its sampling rate and duration.
func ReadMetadata(path string) (model.SignalMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.SignalMetadata{}, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return model.SignalMetadata{}, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	if dec.SampleRate == 0 {
		return model.SignalMetadata{}, fmt.Errorf("%w: %s: zero sample rate", ErrDecode, path)
	}
	dur, err := dec.Duration()
	if err != nil {
		return model.SignalMetadata{}, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	return model.SignalMetadata{
		SamplingRateHz: float64(dec.SampleRate),
		DurationSec:    dur.Seconds(),
	}, nil
}
