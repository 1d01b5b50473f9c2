package summary

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/patman77/NeuroNarrative/internal/domain/model"
	"github.com/patman77/NeuroNarrative/internal/domain/transcript"
	"github.com/patman77/NeuroNarrative/pkg/logger"
)

// Dispatcher fans summarization out per event and reassembles the results
// in original detection order.
type Dispatcher struct {
	summarizer Summarizer
	enabled    bool
	logger     logger.Logger
}

// DispatcherOption applies a configuration option to the Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithEnabled toggles completion calls. When disabled, excerpts are still
// attached but summaries stay absent.
func WithEnabled(enabled bool) DispatcherOption {
	return func(d *Dispatcher) { d.enabled = enabled }
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDispatcher creates a dispatcher over the given summarizer.
func NewDispatcher(s Summarizer, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		summarizer: s,
		enabled:    true,
		logger:     logger.Named("summary"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Summaries correlates each event with its transcript window and attaches
// an optional excerpt and summary. Calls for distinct events run
// concurrently with no ordering constraint among themselves; the result
// slice is indexed by the events' original order regardless of completion
// order. The first failed call cancels all in-flight calls and fails the
// whole batch.
func (d *Dispatcher) Summaries(
	ctx context.Context,
	events []model.Event,
	words []model.TranscribedWord,
	preWindow, postWindow float64,
) ([]model.EventSummary, error) {
	results := make([]model.EventSummary, len(events))

	g, gctx := errgroup.WithContext(ctx)
	for i, evt := range events {
		i, evt := i, evt
		g.Go(func() error {
			out := model.EventSummary{
				EventID:   evt.EventID,
				TimeSec:   evt.TimeSec,
				Rule:      evt.Rule,
				DeltaKohm: evt.DeltaKohm,
				DeltaZ:    evt.DeltaZ,
				Score:     evt.Score,
			}

			window := transcript.Align(words, evt.TimeSec, preWindow, postWindow)
			if len(window) > 0 {
				texts := make([]string, len(window))
				for j, w := range window {
					texts[j] = w.Text
				}
				excerpt := strings.Join(texts, " ")
				out.TranscriptExcerpt = &excerpt

				if d.enabled {
					s, err := d.summarizer.Summarize(gctx, excerpt)
					if err != nil {
						return fmt.Errorf("summarize event %s: %w", evt.EventID, err)
					}
					out.Summary = normalize(s)
				}
			}

			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d.logger.Debug(ctx, "summaries assembled", logger.Int("events", len(events)))
	return results, nil
}

// normalize maps the service's "nothing to say" shapes to an absent
// summary: nil, empty, or the NONE sentinel in any case.
func normalize(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" || strings.EqualFold(trimmed, "none") {
		return nil
	}
	return &trimmed
}
