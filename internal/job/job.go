// Package job runs one dataset generation at a time in the background and
// exposes its progress.
package job

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mlorentedev/hotelreviews/internal/generator"
	"github.com/mlorentedev/hotelreviews/internal/metrics"
	"github.com/mlorentedev/hotelreviews/internal/sink"
)

var (
	// ErrConflict is returned by Start while another run is in flight.
	ErrConflict = errors.New("generation already in progress")
	// ErrNotRunning is returned by Cancel when there is nothing to cancel.
	ErrNotRunning = errors.New("no generation in progress")
)

// Phase is the stage a run is in.
type Phase string

const (
	PhaseIdle         Phase = "Idle"
	PhaseInitializing Phase = "Initializing"
	PhaseGenerating   Phase = "GeneratingRecords"
	PhasePersisting   Phase = "Persisting"
	PhaseDocumenting  Phase = "Documenting"
	PhaseCompleted    Phase = "Completed"
	PhaseFailed       Phase = "Failed"
)

// Status is a snapshot of the current or last run.
type Status struct {
	RunID      string     `json:"run_id,omitempty"`
	Running    bool       `json:"running"`
	Produced   int        `json:"produced"`
	Total      int        `json:"total"`
	Phase      Phase      `json:"phase"`
	Completed  bool       `json:"completed"`
	Outputs    []string   `json:"outputs"`
	Error      string     `json:"error,omitempty"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// Request describes one run.
type Request struct {
	TotalRecords int
	ChunkSize    int
	Sink         sink.Sink
}

// DefaultMaxTotal is the largest run a Runner accepts unless WithMaxTotal
// says otherwise. A run holds all of its records in memory.
const DefaultMaxTotal = 10000000

// Validate rejects non-positive sizes, totals above maxTotal and a missing
// sink.
func (r Request) Validate(maxTotal int) error {
	if r.TotalRecords <= 0 {
		return &generator.ConfigError{Field: "total_reviews", Message: "must be a positive integer"}
	}
	if r.TotalRecords > maxTotal {
		return &generator.ConfigError{Field: "total_reviews", Message: fmt.Sprintf("must not exceed %d", maxTotal)}
	}
	if r.ChunkSize <= 0 {
		return &generator.ConfigError{Field: "chunk_size", Message: "must be a positive integer"}
	}
	if r.Sink == nil {
		return &generator.ConfigError{Field: "output_dir", Message: "no destination"}
	}
	return nil
}

// Runner owns the single in-flight run.
type Runner struct {
	gen      *generator.Generator
	logger   logr.Logger
	now      func() time.Time
	maxTotal int

	mu     sync.Mutex
	status Status
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger.
func WithLogger(l logr.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithMaxTotal caps the records a single run may request. Non-positive
// values keep DefaultMaxTotal.
func WithMaxTotal(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxTotal = n
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// New returns an idle runner.
func New(gen *generator.Generator, opts ...Option) *Runner {
	r := &Runner{
		gen:      gen,
		logger:   logr.Discard(),
		now:      time.Now,
		maxTotal: DefaultMaxTotal,
		status:   Status{Phase: PhaseIdle, Outputs: []string{}},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start launches a run and returns its id. The run outlives ctx's
// cancellation but keeps its values; use Cancel to stop it.
func (r *Runner) Start(ctx context.Context, req Request) (string, error) {
	if err := req.Validate(r.maxTotal); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status.Running {
		return "", ErrConflict
	}

	id := uuid.NewString()
	started := r.now()
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	r.cancel = cancel
	r.done = make(chan struct{})
	r.status = Status{
		RunID:     id,
		Running:   true,
		Total:     req.TotalRecords,
		Phase:     PhaseInitializing,
		Outputs:   []string{},
		StartedAt: &started,
	}

	go r.run(runCtx, id, req, r.done)
	return id, nil
}

// Cancel aborts the in-flight run. The run finishes in PhaseFailed.
func (r *Runner) Cancel() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.status.Running {
		return ErrNotRunning
	}
	r.cancel()
	return nil
}

// Status returns a snapshot of the current or last run.
func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.status
	s.Outputs = append([]string{}, r.status.Outputs...)
	return s
}

// Running reports whether a run is in flight.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status.Running
}

// Wait blocks until the current run, if any, has finished or ctx is done.
func (r *Runner) Wait(ctx context.Context) error {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown cancels any in-flight run and waits for it to stop.
func (r *Runner) Shutdown(ctx context.Context) error {
	if err := r.Cancel(); err != nil && !errors.Is(err, ErrNotRunning) {
		return err
	}
	return r.Wait(ctx)
}

func (r *Runner) run(ctx context.Context, id string, req Request, done chan struct{}) {
	defer close(done)

	log := r.logger.WithValues("run_id", id)
	start := r.now()
	metrics.GenerationInProgress.Set(1)
	defer metrics.GenerationInProgress.Set(0)

	log.Info("Generation started", "total", req.TotalRecords, "chunk_size", req.ChunkSize, "sink", req.Sink.Name())

	outcome, err := r.execute(ctx, req)
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	metrics.GenerationRuns.WithLabelValues(outcome).Inc()

	if err != nil {
		log.Error(err, "Generation failed", "outcome", outcome)
		r.finish(err)
		return
	}
	log.Info("Generation completed", "records", req.TotalRecords, "outputs", len(r.Status().Outputs))
	r.finish(nil)
}

func (r *Runner) execute(ctx context.Context, req Request) (string, error) {
	r.setPhase(PhaseGenerating)
	res, err := r.gen.Generate(ctx, req.TotalRecords, r.setProduced)
	if err != nil {
		return outcomeOf(err), err
	}
	metrics.RecordsGenerated.Add(float64(len(res.Records)))
	for aspect, n := range res.Counts {
		metrics.AspectMentions.WithLabelValues(aspect).Add(float64(n))
	}

	r.setPhase(PhasePersisting)
	parts, err := sink.Split(res.Records, req.ChunkSize)
	if err != nil {
		return metrics.OutcomeFailed, err
	}
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		out, err := req.Sink.WriteChunk(ctx, p)
		if err != nil {
			return outcomeOf(err), errors.Wrapf(err, "writing part %d of %d", p.Index, p.Count)
		}
		metrics.ChunksWritten.Inc()
		names = append(names, p.Name())
		r.addOutput(out)
	}

	r.setPhase(PhaseDocumenting)
	out, err := req.Sink.WriteCard(ctx, sink.Card{
		TotalRecords: len(res.Records),
		Parts:        names,
		Style:        r.gen.Style(),
		Counts:       res.Counts,
		Target:       res.Target,
		GeneratedAt:  r.now(),
	})
	if err != nil {
		return outcomeOf(err), errors.Wrap(err, "writing dataset card")
	}
	r.addOutput(out)
	return metrics.OutcomeCompleted, nil
}

func outcomeOf(err error) string {
	if errors.Is(err, context.Canceled) {
		return metrics.OutcomeCancelled
	}
	return metrics.OutcomeFailed
}

func (r *Runner) setPhase(p Phase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.Phase = p
}

func (r *Runner) setProduced(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.Produced = n
}

func (r *Runner) addOutput(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.Outputs = append(r.status.Outputs, id)
}

func (r *Runner) finish(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	finished := r.now()
	r.status.Running = false
	r.status.FinishedAt = &finished
	r.cancel()
	if err != nil {
		r.status.Phase = PhaseFailed
		r.status.Error = err.Error()
		if errors.Is(err, context.Canceled) {
			r.status.Error = "cancelled"
		}
		return
	}
	r.status.Phase = PhaseCompleted
	r.status.Completed = true
}
