// Package generator assembles labelled negative hotel reviews from a taxonomy
// and a phrase catalog.
package generator

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"github.com/mlorentedev/hotelreviews/internal/render"
	"github.com/mlorentedev/hotelreviews/internal/sampler"
	"github.com/mlorentedev/hotelreviews/internal/taxonomy"
)

const (
	// DefaultTotal is the record count of a full dataset run.
	DefaultTotal = 750000
	// DefaultLogInterval is how often, in records, a run logs its progress.
	DefaultLogInterval = 50000
	// DefaultProgressStep is how often, in records, the progress callback fires.
	DefaultProgressStep = 1000
	// MaxBatch caps the size of a synchronous test batch.
	MaxBatch = 1000

	cancelCheckEvery = 512
	// preallocLimit bounds the up-front capacity of a run's record slice.
	preallocLimit = DefaultTotal
)

// Record is one labelled review.
type Record struct {
	ReviewID   int      `json:"review_id"`
	ReviewText string   `json:"review_text"`
	Aspects    []string `json:"aspects"`
	Problems   []string `json:"problems"`
}

// Result is the outcome of a balanced run.
type Result struct {
	Records []Record
	// Counts holds how many records mention each aspect key.
	Counts sampler.Counters
	Target int
}

// ProgressFunc receives the number of records produced so far.
type ProgressFunc func(produced int)

// Generator produces datasets. Every call to Generate runs against its own
// counters and random source, so a Generator may be reused across runs.
type Generator struct {
	tax          *taxonomy.Taxonomy
	catalog      render.Catalog
	logger       logr.Logger
	seed         int64
	logInterval  int
	progressStep int
	minK, maxK   int
	onRecord     func(Record)

	mu        sync.Mutex
	sampleRun *run
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger runs report to.
func WithLogger(l logr.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithSeed makes every run reproducible. Zero means a time-based seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.seed = seed }
}

// WithLogInterval sets how often a run logs progress. Zero disables it.
func WithLogInterval(n int) Option {
	return func(g *Generator) { g.logInterval = n }
}

// WithProgressStep sets how often the progress callback fires.
func WithProgressStep(n int) Option {
	return func(g *Generator) { g.progressStep = n }
}

// WithAspectRange overrides the default 1..3 aspects per review.
func WithAspectRange(min, max int) Option {
	return func(g *Generator) { g.minK, g.maxK = min, max }
}

// WithRecordHook registers fn to be called with every record a run produces.
func WithRecordHook(fn func(Record)) Option {
	return func(g *Generator) { g.onRecord = fn }
}

// New returns a generator over tax rendered with catalog.
func New(tax *taxonomy.Taxonomy, catalog render.Catalog, opts ...Option) (*Generator, error) {
	if tax == nil || tax.Len() == 0 {
		return nil, taxonomy.ErrEmpty
	}
	if err := catalog.Validate(); err != nil {
		return nil, errors.Wrapf(err, "catalog %q", catalog.Name)
	}

	g := &Generator{
		tax:          tax,
		catalog:      catalog,
		logger:       logr.Discard(),
		logInterval:  DefaultLogInterval,
		progressStep: DefaultProgressStep,
		minK:         1,
		maxK:         3,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.progressStep <= 0 {
		g.progressStep = DefaultProgressStep
	}

	sr, err := g.newRun(0)
	if err != nil {
		return nil, err
	}
	g.sampleRun = sr
	return g, nil
}

// ForStyle builds a generator for one of the built-in styles. A non-empty
// taxonomyPath replaces the style's built-in taxonomy.
func ForStyle(style, taxonomyPath string, opts ...Option) (*Generator, error) {
	catalog, err := render.CatalogFor(style)
	if err != nil {
		return nil, &ConfigError{Field: "style", Message: err.Error()}
	}
	tax, err := taxonomy.Resolve(style, taxonomyPath)
	if err != nil {
		return nil, err
	}
	return New(tax, catalog, opts...)
}

// Taxonomy returns the taxonomy the generator draws from.
func (g *Generator) Taxonomy() *taxonomy.Taxonomy { return g.tax }

// Style returns the catalog name.
func (g *Generator) Style() string { return g.catalog.Name }

// Generate produces total records with ids 1..total using the balanced
// sampler. It returns early with ctx's error if ctx is cancelled.
func (g *Generator) Generate(ctx context.Context, total int, progress ProgressFunc) (*Result, error) {
	if total <= 0 {
		return nil, &ConfigError{Field: "total_records", Message: "must be a positive integer"}
	}

	r, err := g.newRun(total)
	if err != nil {
		return nil, err
	}

	g.logger.Info("Generating balanced dataset", "total", total, "aspects", g.tax.Len(),
		"target", r.target, "style", g.catalog.Name)

	records := make([]Record, 0, min(total, preallocLimit))
	for id := 1; id <= total; id++ {
		if id%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrapf(err, "generation stopped at record %d", id)
			}
		}

		rec, err := r.record(id, r.sampler.Select(r.counters, r.target))
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
		if g.onRecord != nil {
			g.onRecord(rec)
		}

		if g.logInterval > 0 && id%g.logInterval == 0 {
			g.logger.Info("Generated records", "produced", id, "total", total)
		}
		if progress != nil && (id%g.progressStep == 0 || id == total) {
			progress(id)
		}
	}

	g.logDistribution(r.counters, r.target)

	return &Result{Records: records, Counts: r.counters, Target: r.target}, nil
}

// Sample renders one record with an unbalanced draw over the whole
// taxonomy. It is safe for concurrent use.
func (g *Generator) Sample(id int) (Record, error) {
	if id < 1 {
		return Record{}, &ConfigError{Field: "id", Message: "must be a positive integer"}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sampleRun.record(id, g.sampleRun.sampler.Draw())
}

// Batch renders size unbalanced records with ids 1..size, for inspection.
func (g *Generator) Batch(size int) ([]Record, error) {
	if size < 1 || size > MaxBatch {
		return nil, &ConfigError{Field: "size", Message: fmt.Sprintf("must be between 1 and %d", MaxBatch)}
	}
	out := make([]Record, 0, size)
	for id := 1; id <= size; id++ {
		rec, err := g.Sample(id)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (g *Generator) logDistribution(counts sampler.Counters, target int) {
	sorted := counts.Sorted()
	if len(sorted) == 0 {
		return
	}
	g.logger.Info("Aspect distribution", "target", target,
		"min", counts[sorted[len(sorted)-1]], "max", counts[sorted[0]],
		"mentions", counts.Total())
	for _, k := range sorted {
		g.logger.V(1).Info("Aspect count", "aspect", k, "count", counts[k])
	}
}

// run is the state of one generation: its own random source, counters and
// target. Nothing is shared between runs.
type run struct {
	tax      *taxonomy.Taxonomy
	rng      *rand.Rand
	sampler  *sampler.Sampler
	engine   *render.Engine
	counters sampler.Counters
	target   int
}

func (g *Generator) newRun(total int) (*run, error) {
	seed := g.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	s, err := sampler.New(g.tax.Keys(), rng, sampler.WithKRange(g.minK, g.maxK))
	if err != nil {
		return nil, &ConfigError{Field: "aspect_range", Message: err.Error()}
	}
	e, err := render.NewEngine(g.catalog, rng)
	if err != nil {
		return nil, err
	}
	return &run{
		tax:      g.tax,
		rng:      rng,
		sampler:  s,
		engine:   e,
		counters: sampler.NewCounters(g.tax.Keys()),
		target:   sampler.Target(total, g.tax.Len()),
	}, nil
}

// record draws one synonym and one problem per key, independently, and
// renders them.
func (r *run) record(id int, keys []string) (Record, error) {
	aspects := make([]string, len(keys))
	problems := make([]string, len(keys))
	for i, k := range keys {
		syn, prob := r.tax.Synonyms(k), r.tax.Problems(k)
		if len(syn) == 0 || len(prob) == 0 {
			return Record{}, &taxonomy.IntegrityError{Key: k, Reason: "has no phrases to draw from"}
		}
		aspects[i] = syn[r.rng.Intn(len(syn))]
		problems[i] = prob[r.rng.Intn(len(prob))]
	}

	text, err := r.engine.Render(aspects, problems)
	if err != nil {
		return Record{}, errors.Wrapf(err, "rendering record %d", id)
	}
	return Record{ReviewID: id, ReviewText: text, Aspects: aspects, Problems: problems}, nil
}
