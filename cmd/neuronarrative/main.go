// Command neuronarrative serves the GSR analysis API.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/patman77/NeuroNarrative/internal/adapters/asr"
	"github.com/patman77/NeuroNarrative/internal/adapters/http/api"
	"github.com/patman77/NeuroNarrative/internal/adapters/storage"
	"github.com/patman77/NeuroNarrative/internal/app"
	"github.com/patman77/NeuroNarrative/internal/config"
	"github.com/patman77/NeuroNarrative/internal/domain/summary"
	"github.com/patman77/NeuroNarrative/pkg/logger"
	"github.com/patman77/NeuroNarrative/pkg/metrics"
)

// HTTP server timeout constants. Write timeout is generous because analyze
// responses wait on local-model summarization.
const (
	readTimeout       = 30 * time.Second
	writeTimeout      = 10 * time.Minute
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	metrics.Init()

	// Root context cancels on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, err := storage.New(cfg.UploadDir)
	if err != nil {
		log.Error(ctx, "failed to prepare upload dir", logger.Error(err))
		return
	}

	client := summary.NewClient(
		cfg.SummarizerURL,
		cfg.SummarizerModel,
		summary.WithTimeout(time.Duration(cfg.SummarizerTimeoutSec)*time.Second),
	)
	dispatcher := summary.NewDispatcher(client, summary.WithEnabled(cfg.SummarizerEnabled))

	svc := app.New(
		app.WithLogger(log.Named("app")),
		app.WithTranscriber(asr.WordFile{}),
		app.WithDispatcher(dispatcher),
	)

	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, client, store, api.Defaults{
		Ruleset:            cfg.Ruleset,
		PreEventWindowSec:  cfg.PreEventWindowSec,
		PostEventWindowSec: cfg.PostEventWindowSec,
		MaxUploadBytes:     cfg.MaxUploadBytes,
	})
	apiServer.Register(mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.Bool("summarizer_enabled", cfg.SummarizerEnabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}
