// Package config defines service configuration and its loading hooks.
//
// Conventions follow the rest of the service: defaults come from New,
// Load layers an optional YAML file and NEURO_-prefixed environment
// variables on top, and external errors are wrapped with this package's
// sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// UploadDir is where uploaded recordings are stored between
	// /upload and /analyze.
	UploadDir string `koanf:"upload_dir"`

	// MaxUploadBytes caps a single uploaded file.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`

	// Ruleset is the detection preset applied when a request names none.
	Ruleset string `koanf:"ruleset"`

	// PreEventWindowSec and PostEventWindowSec are the default transcript
	// alignment windows around a detected event.
	PreEventWindowSec  float64 `koanf:"pre_event_window_sec"`
	PostEventWindowSec float64 `koanf:"post_event_window_sec"`

	// SummarizerEnabled toggles completion calls; excerpts are still
	// produced when disabled.
	SummarizerEnabled bool `koanf:"summarizer_enabled"`

	// SummarizerURL is the completion endpoint, ollama generate API shape.
	SummarizerURL string `koanf:"summarizer_url"`

	// SummarizerModel names the model passed in the request payload.
	SummarizerModel string `koanf:"summarizer_model"`

	// SummarizerTimeoutSec bounds a single completion call. Generous by
	// default to tolerate local-model latency.
	SummarizerTimeoutSec int `koanf:"summarizer_timeout_sec"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":8080",
		UploadDir:            "/tmp/neuronarrative",
		MaxUploadBytes:       64 << 20,
		Ruleset:              "default",
		PreEventWindowSec:    5.0,
		PostEventWindowSec:   7.0,
		SummarizerEnabled:    true,
		SummarizerURL:        "http://127.0.0.1:11434/api/generate",
		SummarizerModel:      "qwen2.5:7b-instruct-q4_K_M",
		SummarizerTimeoutSec: 120,
	}
}
