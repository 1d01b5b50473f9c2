package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/patman77/NeuroNarrative/internal/adapters/http/api"
	"github.com/patman77/NeuroNarrative/internal/adapters/storage"
	"github.com/patman77/NeuroNarrative/internal/app"
	"github.com/patman77/NeuroNarrative/internal/domain/model"
	"github.com/patman77/NeuroNarrative/internal/domain/signal"
)

type fakeAnalyzer struct {
	report *app.Report
	err    error
	gotReq app.AnalyzeRequest
}

func (f *fakeAnalyzer) Analyze(_ context.Context, req app.AnalyzeRequest) (*app.Report, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

type fakeSummarizer struct {
	summary *string
	err     error
}

func (f *fakeSummarizer) Summarize(context.Context, string) (*string, error) {
	return f.summary, f.err
}

func defaults() api.Defaults {
	return api.Defaults{
		Ruleset:            "default",
		PreEventWindowSec:  5,
		PostEventWindowSec: 7,
		MaxUploadBytes:     1 << 20,
	}
}

// multipartBody builds a gsr+audio upload request body.
func multipartBody(t *testing.T, gsrType, wavType string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	addPart := func(field, filename, contentType, content string) {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = part.Write([]byte(content))
	}

	addPart("gsr", "gsr.csv", gsrType, "time,resistance\n0,1\n1,2\n")
	addPart("audio", "rec.wav", wavType, "RIFFxxxxWAVE")
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func TestUploadEndpoint(t *testing.T) {
	Convey("Given the API server", t, func() {
		store, err := storage.New(t.TempDir())
		So(err, ShouldBeNil)
		srv := api.NewServer(&fakeAnalyzer{}, &fakeSummarizer{}, store, defaults())
		mux := http.NewServeMux()
		srv.Register(mux)

		Convey("When uploading a CSV and a WAV", func() {
			body, contentType := multipartBody(t, "text/csv", "audio/wav")
			req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then both stored paths are returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					CSVPath string `json:"csv_path"`
					WAVPath string `json:"wav_path"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(store.Contains(resp.CSVPath), ShouldBeTrue)
				So(store.Contains(resp.WAVPath), ShouldBeTrue)
				So(strings.HasSuffix(resp.CSVPath, ".csv"), ShouldBeTrue)
				So(strings.HasSuffix(resp.WAVPath, ".wav"), ShouldBeTrue)
			})
		})

		Convey("When the GSR part has the wrong content type", func() {
			body, contentType := multipartBody(t, "application/json", "audio/wav")
			req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then the upload is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "CSV")
			})
		})

		Convey("When using the wrong method", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/upload", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestAnalyzeEndpoint(t *testing.T) {
	Convey("Given uploaded files and a canned report", t, func() {
		store, err := storage.New(t.TempDir())
		So(err, ShouldBeNil)
		csvPath, err := store.Save(strings.NewReader("time,resistance\n0,1\n"), ".csv")
		So(err, ShouldBeNil)
		wavPath, err := store.Save(strings.NewReader("RIFF"), ".wav")
		So(err, ShouldBeNil)

		excerpt := "so that was surprising"
		analyzer := &fakeAnalyzer{report: &app.Report{
			Events: []model.EventSummary{{
				EventID:           "evt-42",
				TimeSec:           10,
				Rule:              "default",
				DeltaKohm:         5,
				DeltaZ:            1.5,
				TranscriptExcerpt: &excerpt,
				Score:             6.5,
			}},
			GSRMetadata:   model.SignalMetadata{SamplingRateHz: 5, DurationSec: 20},
			AudioMetadata: model.SignalMetadata{SamplingRateHz: 16000, DurationSec: 20},
		}}
		srv := api.NewServer(analyzer, &fakeSummarizer{}, store, defaults())
		mux := http.NewServeMux()
		srv.Register(mux)

		analyze := func(body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			return rec
		}

		Convey("When analyzing with explicit windows", func() {
			rec := analyze(fmt.Sprintf(
				`{"csv_path": %q, "wav_path": %q, "ruleset_name": "strict", "pre_event_window_sec": 2, "post_event_window_sec": 3}`,
				csvPath, wavPath))

			Convey("Then the report is returned and the request forwarded intact", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(analyzer.gotReq.RulesetName, ShouldEqual, "strict")
				So(analyzer.gotReq.PreEventWindowSec, ShouldEqual, 2)
				So(analyzer.gotReq.PostEventWindowSec, ShouldEqual, 3)
				So(rec.Body.String(), ShouldContainSubstring, "evt-42")
				So(rec.Body.String(), ShouldContainSubstring, "gsr_metadata")
			})
		})

		Convey("When omitting optional fields", func() {
			rec := analyze(fmt.Sprintf(`{"csv_path": %q, "wav_path": %q}`, csvPath, wavPath))

			Convey("Then configured defaults apply", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(analyzer.gotReq.RulesetName, ShouldEqual, "default")
				So(analyzer.gotReq.PreEventWindowSec, ShouldEqual, 5)
				So(analyzer.gotReq.PostEventWindowSec, ShouldEqual, 7)
			})
		})

		Convey("When the uploaded files are gone", func() {
			rec := analyze(fmt.Sprintf(`{"csv_path": %q, "wav_path": %q}`,
				csvPath+".missing", wavPath))
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When a path points outside the upload dir", func() {
			rec := analyze(fmt.Sprintf(`{"csv_path": "/etc/passwd", "wav_path": %q}`, wavPath))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When required fields are missing", func() {
			rec := analyze(`{"ruleset_name": "default"}`)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the pipeline reports a validation failure", func() {
			analyzer.err = fmt.Errorf("load gsr: %w", signal.ErrMissingColumn)
			rec := analyze(fmt.Sprintf(`{"csv_path": %q, "wav_path": %q}`, csvPath, wavPath))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(rec.Body.String(), ShouldContainSubstring, "validation_error")
		})
	})
}

func TestSummarizeEndpoint(t *testing.T) {
	Convey("Given the summaries test endpoint", t, func() {
		store, err := storage.New(t.TempDir())
		So(err, ShouldBeNil)
		s := "A short sentence."
		srv := api.NewServer(&fakeAnalyzer{}, &fakeSummarizer{summary: &s}, store, defaults())
		mux := http.NewServeMux()
		srv.Register(mux)

		Convey("When posting text", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/summaries/test", strings.NewReader(`{"text": "one two three four five six seven"}`))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then the summary and a request id come back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					Summary *string `json:"summary"`
					ID      string  `json:"id"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Summary, ShouldNotBeNil)
				So(*resp.Summary, ShouldEqual, "A short sentence.")
				So(resp.ID, ShouldNotBeEmpty)
			})
		})

		Convey("When posting empty text", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/summaries/test", strings.NewReader(`{"text": "  "}`))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}
