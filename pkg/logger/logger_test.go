package logger_test

import (
	"context"
	"log/slog"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/patman77/NeuroNarrative/pkg/logger"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Then Get returns a usable logger", func() {
			l := logger.Get()
			So(l, ShouldNotBeNil)
			So(func() {
				l.Info(context.Background(), "hello", logger.String("k", "v"), logger.Int("n", 1))
			}, ShouldNotPanic)
		})

		Convey("Then Named returns a distinct child", func() {
			So(logger.Named("detector"), ShouldNotBeNil)
		})

		Convey("Then level names parse", func() {
			So(logger.SetLevelString("debug"), ShouldBeNil)
			So(logger.SetLevelString("WARN"), ShouldBeNil)
			So(logger.SetLevelString(""), ShouldBeNil)
			So(logger.SetLevelString("loud"), ShouldNotBeNil)
			logger.SetLevel(slog.LevelInfo)
		})

		Convey("Then field constructors carry their values", func() {
			f := logger.Float64("score", 6.5)
			So(f.Key, ShouldEqual, "score")
			So(f.Value, ShouldEqual, 6.5)
			So(logger.Bool("on", true).Value, ShouldEqual, true)
			So(logger.Error(nil).Key, ShouldEqual, "error")
		})
	})
}
