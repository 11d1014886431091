package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-logr/logr"

	"github.com/mlorentedev/hotelreviews/internal/config"
	"github.com/mlorentedev/hotelreviews/internal/generator"
	"github.com/mlorentedev/hotelreviews/internal/handler"
	"github.com/mlorentedev/hotelreviews/internal/job"
	"github.com/mlorentedev/hotelreviews/internal/metrics"
	"github.com/mlorentedev/hotelreviews/internal/render"
	"github.com/mlorentedev/hotelreviews/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	port := flag.Int("port", 0, "override listen port")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("config", err)
	}
	if *port > 0 {
		cfg.Port = *port
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	slogHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(slogHandler))
	logger := logr.FromSlogHandler(slogHandler)

	gen, err := generator.ForStyle(cfg.Style, cfg.TaxonomyPath,
		generator.WithLogger(logger.WithName("generator")),
		generator.WithSeed(cfg.Seed),
		generator.WithLogInterval(cfg.LogInterval),
		generator.WithRecordHook(observeRecord),
	)
	if err != nil {
		fatal("generator", err)
	}
	runner := job.New(gen,
		job.WithLogger(logger.WithName("job")),
		job.WithMaxTotal(cfg.MaxTotalRecords),
	)

	h := server.SetupMux(server.Options{
		Runner: runner,
		Source: gen,
		Defaults: handler.Defaults{
			TotalRecords: cfg.TotalRecords,
			ChunkSize:    cfg.ChunkSize,
			OutputRoot:   cfg.OutputRoot,
			OutputDir:    cfg.OutputDir,
		},
		TestBatchDir: filepath.Join(cfg.OutputRoot, cfg.TestBatchDir),
		APIKey:       cfg.APIKey,
		RateLimit:    cfg.RateLimit,
	})

	if cfg.APIKey != "" {
		slog.Info("auth: API key required (X-API-Key header)")
	} else {
		slog.Info("auth: disabled (no api_key configured)")
	}
	slog.Info("taxonomy loaded", "style", gen.Style(), "aspects", gen.Taxonomy().Len())

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("hotelreviews api listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fatal("server", err)
		}
	}()

	<-done
	slog.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		fatal("shutdown", err)
	}
	if err := runner.Shutdown(ctx); err != nil {
		slog.Warn("generation run did not stop in time", "error", err)
	}
	slog.Info("server stopped")
}

func observeRecord(rec generator.Record) {
	metrics.ReviewTokens.Observe(float64(render.Tokens(rec.ReviewText)))
}

func fatal(what string, err error) {
	slog.Error(what, "error", err)
	os.Exit(1)
}
