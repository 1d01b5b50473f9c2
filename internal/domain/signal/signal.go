// Package signal loads raw GSR rows and normalizes them into a
// time-ordered series.
package signal

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/patman77/NeuroNarrative/internal/domain/model"
)

// millisecondThreshold: raw time values above this are treated as
// milliseconds and rescaled to seconds.
const millisecondThreshold = 1000.0

// Series is a normalized GSR recording: strictly ascending timestamps in
// seconds paired with resistance readings in kiloohms.
type Series struct {
	TimeSec        []float64
	ResistanceKohm []float64
}

// Len returns the number of samples.
func (s Series) Len() int { return len(s.TimeSec) }

// DurationSec is the span between the first and last timestamp.
func (s Series) DurationSec() float64 {
	if s.Len() == 0 {
		return 0
	}
	return s.TimeSec[s.Len()-1] - s.TimeSec[0]
}

// SamplingRateHz estimates the sampling rate as 1/mean(positive deltas).
// It returns 0.0 when fewer than 2 samples exist or no positive delta
// exists; degenerate input is not an error here.
func (s Series) SamplingRateHz() float64 {
	if s.Len() < 2 {
		return 0.0
	}
	deltas := make([]float64, 0, s.Len()-1)
	for i := 1; i < s.Len(); i++ {
		if d := s.TimeSec[i] - s.TimeSec[i-1]; d > 0 {
			deltas = append(deltas, d)
		}
	}
	if len(deltas) == 0 {
		return 0.0
	}
	return 1 / stat.Mean(deltas, nil)
}

// LoadCSV parses tabular rows into a normalized series. The time and
// resistance columns are located by case-insensitive substring match on the
// header; a missing column is a validation failure. Raw times whose maximum
// exceeds 1000 are interpreted as milliseconds.
func LoadCSV(r io.Reader) (Series, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return Series{}, fmt.Errorf("%w: reading header: %w", ErrBadInput, err)
	}

	timeCol, resistanceCol := -1, -1
	for i, name := range header {
		lower := strings.ToLower(name)
		if timeCol < 0 && strings.Contains(lower, "time") {
			timeCol = i
		}
		if resistanceCol < 0 && strings.Contains(lower, "resistance") {
			resistanceCol = i
		}
	}
	if timeCol < 0 || resistanceCol < 0 {
		return Series{}, fmt.Errorf("%w: input must contain time and resistance columns", ErrMissingColumn)
	}

	var samples []model.RawSample
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Series{}, fmt.Errorf("%w: row %d: %w", ErrBadInput, row, err)
		}
		if timeCol >= len(record) || resistanceCol >= len(record) {
			return Series{}, fmt.Errorf("%w: row %d: too few fields", ErrBadInput, row)
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(record[timeCol]), 64)
		if err != nil {
			return Series{}, fmt.Errorf("%w: row %d: time %q: %w", ErrBadInput, row, record[timeCol], err)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(record[resistanceCol]), 64)
		if err != nil {
			return Series{}, fmt.Errorf("%w: row %d: resistance %q: %w", ErrBadInput, row, record[resistanceCol], err)
		}
		samples = append(samples, model.RawSample{Time: t, Resistance: v})
	}

	return Normalize(samples), nil
}

// Normalize converts raw samples into a Series: unit inference, ascending
// sort, duplicate-timestamp drop.
func Normalize(samples []model.RawSample) Series {
	if len(samples) == 0 {
		return Series{}
	}

	maxTime := samples[0].Time
	for _, s := range samples[1:] {
		if s.Time > maxTime {
			maxTime = s.Time
		}
	}
	scale := 1.0
	if maxTime > millisecondThreshold {
		scale = 1.0 / 1000.0
	}

	sorted := make([]model.RawSample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })

	series := Series{
		TimeSec:        make([]float64, 0, len(sorted)),
		ResistanceKohm: make([]float64, 0, len(sorted)),
	}
	for _, s := range sorted {
		t := s.Time * scale
		if n := len(series.TimeSec); n > 0 && t == series.TimeSec[n-1] {
			continue // strictly ascending timeline; later duplicate dropped
		}
		series.TimeSec = append(series.TimeSec, t)
		series.ResistanceKohm = append(series.ResistanceKohm, s.Resistance)
	}
	return series
}
