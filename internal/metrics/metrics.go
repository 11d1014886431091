package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcomes used as the "outcome" label of GenerationRuns.
const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
)

var (
	// RequestsTotal counts HTTP requests by method, path, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hotelreviews_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// RecordsGenerated counts records produced by completed generation loops.
	RecordsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hotelreviews_records_generated_total",
		Help: "Total review records generated.",
	})

	// AspectMentions counts how often each aspect was drawn.
	AspectMentions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hotelreviews_aspect_mentions_total",
		Help: "Aspect mentions across generated records.",
	}, []string{"aspect"})

	// GenerationRuns counts finished runs by outcome.
	GenerationRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hotelreviews_generation_runs_total",
		Help: "Generation runs by outcome.",
	}, []string{"outcome"})

	// GenerationDuration tracks wall time of a run, persistence included.
	GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hotelreviews_generation_duration_seconds",
		Help:    "Time spent on a generation run.",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600},
	})

	// GenerationInProgress is 1 while a run is in flight.
	GenerationInProgress = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hotelreviews_generation_in_progress",
		Help: "Whether a generation run is in progress (1) or not (0).",
	})

	// ChunksWritten counts dataset parts persisted.
	ChunksWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hotelreviews_chunks_written_total",
		Help: "Dataset chunks written to a sink.",
	})

	// ReviewTokens tracks the distribution of review lengths in tokens.
	ReviewTokens = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hotelreviews_review_tokens",
		Help:    "Whitespace-separated tokens per generated review.",
		Buckets: []float64{5, 10, 15, 20, 30, 40, 50, 60},
	})
)
