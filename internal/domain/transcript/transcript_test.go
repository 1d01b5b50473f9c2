package transcript_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/patman77/NeuroNarrative/internal/domain/model"
	"github.com/patman77/NeuroNarrative/internal/domain/transcript"
)

func f(v float64) *float64 { return &v }

func TestAlign(t *testing.T) {
	words := []model.TranscribedWord{
		{Text: "before", Start: f(2.0), Confidence: f(0.9)},
		{Text: "early", Start: f(5.5), Confidence: f(0.8)},
		{Text: "noisy", Start: f(6.0), Confidence: f(0.4)},
		{Text: "untimed", Confidence: f(0.99)},
		{Text: "center", Start: f(10.0)},
		{Text: "late", Start: f(16.5), Confidence: f(0.7)},
		{Text: "after", Start: f(17.5), Confidence: f(0.9)},
	}

	Convey("Given an event at t=10 with a (5, 7) window", t, func() {
		selected := transcript.Align(words, 10, 5, 7)

		Convey("Then only confidently timed words inside [5, 17] survive, in order", func() {
			texts := make([]string, len(selected))
			for i, w := range selected {
				texts[i] = w.Text
			}
			So(texts, ShouldResemble, []string{"early", "center", "late"})
		})

		Convey("And no selected word has low confidence or a missing start", func() {
			for _, w := range selected {
				So(w.Start, ShouldNotBeNil)
				if w.Confidence != nil {
					So(*w.Confidence, ShouldBeGreaterThanOrEqualTo, 0.5)
				}
			}
		})
	})

	Convey("Given a window covering nothing", t, func() {
		So(transcript.Align(words, 100, 1, 1), ShouldBeEmpty)
	})

	Convey("Given an empty transcript", t, func() {
		So(transcript.Align(nil, 10, 5, 7), ShouldBeEmpty)
	})

	Convey("Given boundary words", t, func() {
		boundary := []model.TranscribedWord{
			{Text: "at-start", Start: f(5.0)},
			{Text: "at-end", Start: f(17.0)},
		}

		Convey("Then the window is inclusive on both sides", func() {
			So(transcript.Align(boundary, 10, 5, 7), ShouldHaveLength, 2)
		})
	})
}
