package asr_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/patman77/NeuroNarrative/internal/adapters/asr"
)

func TestWordFile(t *testing.T) {
	ctx := context.Background()

	Convey("Given a recording with a word file next to it", t, func() {
		dir := t.TempDir()
		wav := filepath.Join(dir, "session.wav")
		words := `[
			{"text": "hello", "start": 0.5, "end": 0.9, "confidence": 0.95},
			{"text": "there", "start": 1.0}
		]`
		So(os.WriteFile(filepath.Join(dir, "session.words.json"), []byte(words), 0o600), ShouldBeNil)

		Convey("When transcribing", func() {
			got, err := asr.WordFile{}.Transcribe(ctx, wav)

			Convey("Then the timed words are returned", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 2)
				So(got[0].Text, ShouldEqual, "hello")
				So(*got[0].Start, ShouldEqual, 0.5)
				So(*got[0].Confidence, ShouldEqual, 0.95)
				So(got[1].Confidence, ShouldBeNil)
			})
		})
	})

	Convey("Given a recording without a word file", t, func() {
		wav := filepath.Join(t.TempDir(), "silent.wav")

		Convey("Then the transcript is empty, not an error", func() {
			got, err := asr.WordFile{}.Transcribe(ctx, wav)
			So(err, ShouldBeNil)
			So(got, ShouldBeEmpty)
		})
	})

	Convey("Given a malformed word file", t, func() {
		dir := t.TempDir()
		wav := filepath.Join(dir, "bad.wav")
		So(os.WriteFile(filepath.Join(dir, "bad.words.json"), []byte("{not json"), 0o600), ShouldBeNil)

		Convey("Then a transcript error is raised", func() {
			_, err := asr.WordFile{}.Transcribe(ctx, wav)
			So(err, ShouldNotBeNil)
			So(err, ShouldWrap, asr.ErrTranscript)
		})
	})

	Convey("Given the no-op transcriber", t, func() {
		got, err := asr.Noop{}.Transcribe(ctx, "whatever.wav")
		So(err, ShouldBeNil)
		So(got, ShouldBeEmpty)
	})
}
