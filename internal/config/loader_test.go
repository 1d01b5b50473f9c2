package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/patman77/NeuroNarrative/internal/config"
)

func TestLoad(t *testing.T) {
	Convey("Given no file and no environment overrides", t, func() {
		t.Setenv("NEURO_CONFIG", "")

		cfg, err := config.Load(context.Background())

		Convey("Then defaults are returned", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":8080")
			So(cfg.Ruleset, ShouldEqual, "default")
			So(cfg.PreEventWindowSec, ShouldEqual, 5.0)
			So(cfg.PostEventWindowSec, ShouldEqual, 7.0)
			So(cfg.SummarizerEnabled, ShouldBeTrue)
			So(cfg.SummarizerTimeoutSec, ShouldEqual, 120)
		})
	})

	Convey("Given environment overrides", t, func() {
		t.Setenv("NEURO_CONFIG", "")
		t.Setenv("NEURO_ADDR", ":9999")
		t.Setenv("NEURO_SUMMARIZER_MODEL", "llama3:8b")
		t.Setenv("NEURO_SUMMARIZER_ENABLED", "false")

		cfg, err := config.Load(context.Background())

		Convey("Then env wins over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9999")
			So(cfg.SummarizerModel, ShouldEqual, "llama3:8b")
			So(cfg.SummarizerEnabled, ShouldBeFalse)
		})
	})

	Convey("Given a YAML config file", t, func() {
		// Undo env overrides leaked from the previous block; t.Setenv only
		// restores at the end of the whole test function.
		So(os.Unsetenv("NEURO_ADDR"), ShouldBeNil)
		dir := t.TempDir()
		path := filepath.Join(dir, "neuro.yaml")
		yaml := "addr: \":7070\"\nruleset: strict\npre_event_window_sec: 2.5\n"
		So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)
		t.Setenv("NEURO_CONFIG", path)

		cfg, err := config.Load(context.Background())

		Convey("Then file values layer over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.Ruleset, ShouldEqual, "strict")
			So(cfg.PreEventWindowSec, ShouldEqual, 2.5)
			So(cfg.PostEventWindowSec, ShouldEqual, 7.0)
		})

		Convey("And env still wins over the file", func() {
			t.Setenv("NEURO_ADDR", ":6060")
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
		})
	})

	Convey("Given an invalid configuration", t, func() {
		t.Setenv("NEURO_CONFIG", "")

		Convey("Then blank required fields are rejected", func() {
			t.Setenv("NEURO_ADDR", "")
			_, err := config.Load(context.Background())
			So(err, ShouldNotBeNil)
			So(err, ShouldWrap, config.ErrInvalidConfig)
		})
	})
}
