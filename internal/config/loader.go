package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, an optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. YAML file named by NEURO_CONFIG
//  3. environment variables with prefix NEURO_
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("NEURO_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// NEURO_SUMMARIZER_URL -> summarizer_url; underscores preserved to
	// match the koanf tags on Config.
	envProvider := env.Provider("NEURO_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "neuro_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	switch {
	case cfg.Addr == "":
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.UploadDir == "":
		return nil, fmt.Errorf("%w: upload_dir must not be empty", ErrInvalidConfig)
	case cfg.SummarizerEnabled && cfg.SummarizerURL == "":
		return nil, fmt.Errorf("%w: summarizer_url required when summarizer is enabled", ErrInvalidConfig)
	case cfg.PreEventWindowSec < 0 || cfg.PostEventWindowSec < 0:
		return nil, fmt.Errorf("%w: event windows must not be negative", ErrInvalidConfig)
	}
	return &cfg, nil
}
