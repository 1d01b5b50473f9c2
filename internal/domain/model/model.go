// Package model contains domain models passed between layers.
package model

// RawSample is a (time, resistance) pair as read from input, unvalidated.
type RawSample struct {
	Time       float64
	Resistance float64
}

// Event is a physiologically significant point detected in the GSR series.
type Event struct {
	EventID   string  // defaults to "evt-{index}"
	TimeSec   float64 // event time on the normalized timeline
	Rule      string  // name of the preset that produced it
	DeltaKohm float64 // deviation from the series median
	DeltaZ    float64 // z-score of the raw value; 0 when unavailable
	Score     float64 // |DeltaZ| + |DeltaKohm|, always finite
}

// TranscribedWord is one timed word from the speech-recognition stage.
// Timing and confidence may be absent; pointers distinguish missing from zero.
type TranscribedWord struct {
	Text       string   `json:"text"`
	Start      *float64 `json:"start,omitempty"`
	End        *float64 `json:"end,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// EventSummary is the terminal, caller-owned artifact: an Event joined with
// its optional transcript excerpt and optional one-sentence summary.
type EventSummary struct {
	EventID           string  `json:"event_id"`
	TimeSec           float64 `json:"time_sec"`
	Rule              string  `json:"rule"`
	DeltaKohm         float64 `json:"delta_kohm"`
	DeltaZ            float64 `json:"delta_z"`
	TranscriptExcerpt *string `json:"transcript_excerpt,omitempty"`
	Summary           *string `json:"summary,omitempty"`
	Score             float64 `json:"score"`
}

// SignalMetadata describes one modality of a recording.
type SignalMetadata struct {
	SamplingRateHz float64 `json:"sampling_rate_hz"`
	DurationSec    float64 `json:"duration_sec"`
}
