// Package transcript aligns transcribed words with detected events.
package transcript

import "github.com/patman77/NeuroNarrative/internal/domain/model"

// minConfidence is the cutoff below which a word is considered too
// unreliable to attach to an event.
const minConfidence = 0.5

// Align selects words whose start lies inside the asymmetric window
// [eventTime-preWindow, eventTime+postWindow]. Words without a start
// timestamp are dropped silently; words carrying a confidence below
// minConfidence are dropped. Input ordering is preserved and the result
// may be empty.
func Align(words []model.TranscribedWord, eventTime, preWindow, postWindow float64) []model.TranscribedWord {
	start := eventTime - preWindow
	end := eventTime + postWindow

	var selected []model.TranscribedWord
	for _, w := range words {
		if w.Start == nil {
			continue
		}
		if w.Confidence != nil && *w.Confidence < minConfidence {
			continue
		}
		if *w.Start >= start && *w.Start <= end {
			selected = append(selected, w)
		}
	}
	return selected
}
