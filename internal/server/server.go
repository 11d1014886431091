package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mlorentedev/hotelreviews/internal/handler"
	"github.com/mlorentedev/hotelreviews/internal/middleware"
)

// Options carries everything the HTTP surface depends on.
type Options struct {
	Runner       handler.Runner
	Source       handler.ReviewSource
	Defaults     handler.Defaults
	TestBatchDir string
	APIKey       string
	// RateLimit is the number of POST requests per minute and client.
	// Zero disables limiting.
	RateLimit int
}

// SetupMux wires handlers with the full middleware chain.
func SetupMux(opts Options) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", handler.Health(opts.Runner, opts.Source))
	mux.HandleFunc("/api/generation/start", handler.StartGeneration(opts.Runner, opts.Defaults))
	mux.HandleFunc("/api/generation/status", handler.GenerationStatus(opts.Runner))
	mux.HandleFunc("/api/generation/cancel", handler.CancelGeneration(opts.Runner))
	mux.HandleFunc("/api/generation/sample", handler.Sample(opts.Source))
	mux.HandleFunc("/api/generation/aspects", handler.Aspects(opts.Source))
	mux.HandleFunc("/api/generation/test-batch", handler.TestBatch(opts.Source, opts.TestBatchDir))
	mux.Handle("/metrics", promhttp.Handler())

	var rl *middleware.RateLimiter
	if opts.RateLimit > 0 {
		rl = middleware.NewRateLimiter(opts.RateLimit, time.Minute)
	}
	return middleware.Chain(mux, rl, opts.APIKey)
}
