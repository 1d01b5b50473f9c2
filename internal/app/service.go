// Package app composes the analysis pipeline: load and normalize the GSR
// series, detect events, align the transcript, dispatch summarization, and
// assemble one consolidated report per request.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/patman77/NeuroNarrative/internal/adapters/asr"
	"github.com/patman77/NeuroNarrative/internal/adapters/audio"
	"github.com/patman77/NeuroNarrative/internal/domain/detect"
	"github.com/patman77/NeuroNarrative/internal/domain/model"
	"github.com/patman77/NeuroNarrative/internal/domain/rules"
	"github.com/patman77/NeuroNarrative/internal/domain/signal"
	"github.com/patman77/NeuroNarrative/internal/domain/summary"
	"github.com/patman77/NeuroNarrative/pkg/logger"
	"github.com/patman77/NeuroNarrative/pkg/metrics"
)

// AudioMetadataFunc reads sampling rate and duration from a recording.
type AudioMetadataFunc func(path string) (model.SignalMetadata, error)

// AnalyzeRequest carries one analysis request through the pipeline.
type AnalyzeRequest struct {
	CSVPath            string
	WAVPath            string
	RulesetName        string
	PreEventWindowSec  float64
	PostEventWindowSec float64
}

// Report is the consolidated analysis result.
type Report struct {
	Events        []model.EventSummary `json:"events"`
	GSRMetadata   model.SignalMetadata `json:"gsr_metadata"`
	AudioMetadata model.SignalMetadata `json:"audio_metadata"`
}

// Service orchestrates the analysis pipeline.
type Service struct {
	transcriber   asr.Transcriber
	dispatcher    *summary.Dispatcher
	audioMetadata AudioMetadataFunc
	logger        logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithTranscriber sets the speech-recognition collaborator.
func WithTranscriber(t asr.Transcriber) Option {
	return func(s *Service) {
		if t != nil {
			s.transcriber = t
		}
	}
}

// WithDispatcher sets the summarization dispatcher.
func WithDispatcher(d *summary.Dispatcher) Option {
	return func(s *Service) {
		if d != nil {
			s.dispatcher = d
		}
	}
}

// WithAudioMetadata replaces the WAV metadata reader.
func WithAudioMetadata(fn AudioMetadataFunc) Option {
	return func(s *Service) {
		if fn != nil {
			s.audioMetadata = fn
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. Without options it runs with the no-op
// transcriber and a disabled dispatcher, which still produces excerpts-free
// reports.
func New(opts ...Option) *Service {
	s := &Service{
		transcriber:   asr.Noop{},
		dispatcher:    summary.NewDispatcher(nil, summary.WithEnabled(false)),
		audioMetadata: audio.ReadMetadata,
		logger:        logger.Named("app"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze runs one request end-to-end. Detection is synchronous and
// completes before any fan-out; summarization failures abort the request.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (*Report, error) {
	start := time.Now()
	report, err := s.analyze(ctx, req)
	metrics.RecordAnalysisDuration(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordAnalysisError()
		return nil, err
	}
	metrics.RecordAnalysis()
	return report, nil
}

func (s *Service) analyze(ctx context.Context, req AnalyzeRequest) (*Report, error) {
	f, err := os.Open(req.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("open gsr file: %w", err)
	}
	series, err := signal.LoadCSV(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("load gsr %s: %w", req.CSVPath, err)
	}
	if series.Len() == 0 {
		return nil, fmt.Errorf("load gsr %s: %w: no samples", req.CSVPath, signal.ErrBadInput)
	}

	gsrMeta := model.SignalMetadata{
		SamplingRateHz: series.SamplingRateHz(),
		DurationSec:    series.DurationSec(),
	}

	audioMeta, err := s.audioMetadata(req.WAVPath)
	if err != nil {
		return nil, err
	}

	rule := rules.Get(req.RulesetName)
	events := detect.Detect(series, rule)
	metrics.RecordEventsDetected(len(events))
	s.logger.Info(ctx, "detection complete",
		logger.String("rule", rule.Name),
		logger.Int("events", len(events)),
		logger.Float64("duration_sec", gsrMeta.DurationSec),
	)

	words, err := s.transcriber.Transcribe(ctx, req.WAVPath)
	if err != nil {
		return nil, fmt.Errorf("transcribe %s: %w", req.WAVPath, err)
	}

	summaries, err := s.dispatcher.Summaries(ctx, events, words, req.PreEventWindowSec, req.PostEventWindowSec)
	if err != nil {
		return nil, err
	}

	return &Report{
		Events:        summaries,
		GSRMetadata:   gsrMeta,
		AudioMetadata: audioMeta,
	}, nil
}
