// Package metrics provides Prometheus metrics for the NeuroNarrative service.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	registry *prometheus.Registry

	// Analysis pipeline
	analysesTotal    prometheus.Counter
	analysisErrors   prometheus.Counter
	analysisDuration prometheus.Histogram
	eventsDetected   prometheus.Counter

	// Summarization
	summarizerCalls   prometheus.Counter
	summarizerSkipped prometheus.Counter
	summarizerErrors  prometheus.Counter
	summarizerLatency prometheus.Histogram

	// Uploads
	uploadsTotal prometheus.Counter
	uploadBytes  prometheus.Counter

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec
}

// NewManager creates a Manager with its own registry.
func NewManager() *Manager {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Manager{registry: reg}

	m.analysesTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "neuronarrative",
		Name:      "analyses_total",
		Help:      "Completed analysis requests.",
	})
	m.analysisErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "neuronarrative",
		Name:      "analysis_errors_total",
		Help:      "Analysis requests that failed.",
	})
	m.analysisDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: "neuronarrative",
		Name:      "analysis_duration_ms",
		Help:      "End-to-end analysis latency in milliseconds.",
		Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 15000, 60000},
	})
	m.eventsDetected = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "neuronarrative",
		Name:      "events_detected_total",
		Help:      "GSR events emitted by the detector.",
	})

	m.summarizerCalls = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "neuronarrative",
		Subsystem: "summarizer",
		Name:      "calls_total",
		Help:      "Requests issued to the completion endpoint.",
	})
	m.summarizerSkipped = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "neuronarrative",
		Subsystem: "summarizer",
		Name:      "skipped_total",
		Help:      "Events whose excerpt was too short or empty to summarize.",
	})
	m.summarizerErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "neuronarrative",
		Subsystem: "summarizer",
		Name:      "errors_total",
		Help:      "Failed completion calls.",
	})
	m.summarizerLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: "neuronarrative",
		Subsystem: "summarizer",
		Name:      "latency_ms",
		Help:      "Completion call latency in milliseconds.",
		Buckets:   []float64{50, 200, 500, 1000, 5000, 15000, 60000, 120000},
	})

	m.uploadsTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "neuronarrative",
		Name:      "uploads_total",
		Help:      "Files stored through the upload endpoint.",
	})
	m.uploadBytes = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "neuronarrative",
		Name:      "upload_bytes_total",
		Help:      "Bytes stored through the upload endpoint.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "neuronarrative",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "neuronarrative",
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 30000},
	}, []string{"endpoint", "method"})
	m.httpErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "neuronarrative",
		Subsystem: "http",
		Name:      "errors_total",
		Help:      "HTTP responses with status >= 400 by endpoint.",
	}, []string{"endpoint", "status"})

	return m
}

// Registry exposes the manager's registry for promhttp handlers.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

var (
	globalMu sync.RWMutex
	globalM  *Manager
)

// Init installs the global metrics manager.
func Init() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalM = NewManager()
}

func get() *Manager {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalM
}

// GetRegistry returns the global registry, initializing the manager lazily.
func GetRegistry() *prometheus.Registry {
	if get() == nil {
		Init()
	}
	return get().Registry()
}

// Package-level recording helpers. All are no-ops before Init.

func RecordAnalysis() {
	if m := get(); m != nil {
		m.analysesTotal.Inc()
	}
}

func RecordAnalysisError() {
	if m := get(); m != nil {
		m.analysisErrors.Inc()
	}
}

func RecordAnalysisDuration(ms float64) {
	if m := get(); m != nil {
		m.analysisDuration.Observe(ms)
	}
}

func RecordEventsDetected(n int) {
	if m := get(); m != nil {
		m.eventsDetected.Add(float64(n))
	}
}

func RecordSummarizerCall() {
	if m := get(); m != nil {
		m.summarizerCalls.Inc()
	}
}

func RecordSummarizerSkipped() {
	if m := get(); m != nil {
		m.summarizerSkipped.Inc()
	}
}

func RecordSummarizerError() {
	if m := get(); m != nil {
		m.summarizerErrors.Inc()
	}
}

func RecordSummarizerLatency(ms float64) {
	if m := get(); m != nil {
		m.summarizerLatency.Observe(ms)
	}
}

func RecordUpload(bytes int64) {
	if m := get(); m != nil {
		m.uploadsTotal.Inc()
		m.uploadBytes.Add(float64(bytes))
	}
}

func RecordHTTPRequest(endpoint, method, status string) {
	if m := get(); m != nil {
		m.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

func RecordHTTPRequestDuration(endpoint, method string, ms float64) {
	if m := get(); m != nil {
		m.httpRequestDuration.WithLabelValues(endpoint, method).Observe(ms)
	}
}

func RecordHTTPError(endpoint, status string) {
	if m := get(); m != nil {
		m.httpErrors.WithLabelValues(endpoint, status).Inc()
	}
}
