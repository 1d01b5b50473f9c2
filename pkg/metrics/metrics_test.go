package metrics_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/patman77/NeuroNarrative/pkg/metrics"
)

func TestMetrics(t *testing.T) {
	Convey("Given an initialized metrics manager", t, func() {
		metrics.Init()

		Convey("Then recording helpers do not panic", func() {
			So(func() {
				metrics.RecordAnalysis()
				metrics.RecordAnalysisError()
				metrics.RecordAnalysisDuration(123)
				metrics.RecordEventsDetected(4)
				metrics.RecordSummarizerCall()
				metrics.RecordSummarizerSkipped()
				metrics.RecordSummarizerError()
				metrics.RecordSummarizerLatency(456)
				metrics.RecordUpload(1024)
				metrics.RecordHTTPRequest("analyze", "POST", "200")
				metrics.RecordHTTPRequestDuration("analyze", "POST", 12)
				metrics.RecordHTTPError("analyze", "500")
			}, ShouldNotPanic)
		})

		Convey("Then the registry gathers the recorded families", func() {
			metrics.RecordAnalysis()
			families, err := metrics.GetRegistry().Gather()
			So(err, ShouldBeNil)
			names := make([]string, len(families))
			for i, f := range families {
				names[i] = f.GetName()
			}
			So(names, ShouldContain, "neuronarrative_analyses_total")
		})
	})

	Convey("Given a fresh manager", t, func() {
		m := metrics.NewManager()
		So(m.Registry(), ShouldNotBeNil)
	})
}
