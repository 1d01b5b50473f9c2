package audio_test

import (
	"os"
	"path/filepath"
	"testing"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/patman77/NeuroNarrative/internal/adapters/audio"
)

// writeWAV writes seconds of silence at the given rate.
func writeWAV(t *testing.T, path string, rate, seconds int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: 1, SampleRate: rate},
		Data:           make([]int, rate*seconds),
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestReadMetadata(t *testing.T) {
	Convey("Given a 2-second 16 kHz recording", t, func() {
		path := filepath.Join(t.TempDir(), "rec.wav")
		writeWAV(t, path, 16000, 2)

		Convey("When reading metadata", func() {
			meta, err := audio.ReadMetadata(path)

			Convey("Then sampling rate and duration are reported", func() {
				So(err, ShouldBeNil)
				So(meta.SamplingRateHz, ShouldEqual, 16000)
				So(meta.DurationSec, ShouldAlmostEqual, 2.0, 0.01)
			})
		})
	})

	Convey("Given a missing file", t, func() {
		_, err := audio.ReadMetadata(filepath.Join(t.TempDir(), "nope.wav"))
		So(err, ShouldNotBeNil)
		So(err, ShouldWrap, audio.ErrDecode)
	})

	Convey("Given a file that is not WAV", t, func() {
		path := filepath.Join(t.TempDir(), "noise.wav")
		So(os.WriteFile(path, []byte("definitely not riff"), 0o600), ShouldBeNil)

		_, err := audio.ReadMetadata(path)
		So(err, ShouldNotBeNil)
		So(err, ShouldWrap, audio.ErrDecode)
	})
}
