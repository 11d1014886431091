// Package sampler chooses which aspects each generated review mentions while
// steering the per-aspect totals of a run toward uniformity.
package sampler

import (
	"math/rand"
	"sort"

	"github.com/pkg/errors"
)

// ErrNoKeys is returned when a sampler is built over no aspect keys.
var ErrNoKeys = errors.New("sampler: no aspect keys")

// Counters tracks how many times each aspect key has been drawn in a run.
type Counters map[string]int

// NewCounters returns counters initialised to zero for every key.
func NewCounters(keys []string) Counters {
	c := make(Counters, len(keys))
	for _, k := range keys {
		c[k] = 0
	}
	return c
}

// Min returns the smallest count, or 0 for empty counters.
func (c Counters) Min() int {
	first := true
	min := 0
	for _, n := range c {
		if first || n < min {
			min, first = n, false
		}
	}
	return min
}

// Total returns the sum of all counts.
func (c Counters) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Sorted returns the keys ordered by descending count, ties broken by key.
func (c Counters) Sorted() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if c[keys[i]] != c[keys[j]] {
			return c[keys[i]] > c[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Target is the minimum count every aspect must reach in a run of total
// records over n aspects.
func Target(total, n int) int {
	if n <= 0 {
		return 0
	}
	return total / n
}

// Sampler draws distinct aspect keys. It keeps no counters of its own; the
// caller owns them so every run starts from a fresh set.
type Sampler struct {
	keys []string
	rng  *rand.Rand
	minK int
	maxK int
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithKRange overrides the default 1..3 aspects per review.
func WithKRange(min, max int) Option {
	return func(s *Sampler) {
		s.minK, s.maxK = min, max
	}
}

// New returns a sampler over keys, kept in the given order.
func New(keys []string, rng *rand.Rand, opts ...Option) (*Sampler, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}
	if rng == nil {
		return nil, errors.New("sampler: nil random source")
	}
	s := &Sampler{
		keys: append([]string(nil), keys...),
		rng:  rng,
		minK: 1,
		maxK: 3,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.minK < 1 || s.maxK < s.minK {
		return nil, errors.Errorf("sampler: invalid aspect range [%d,%d]", s.minK, s.maxK)
	}
	return s, nil
}

// Select draws 1..3 distinct keys and increments their counters. While any
// key is still below target the draw is restricted to those keys; once all
// have reached it the whole taxonomy is eligible again.
func (s *Sampler) Select(counters Counters, target int) []string {
	pool := make([]string, 0, len(s.keys))
	for _, k := range s.keys {
		if counters[k] < target {
			pool = append(pool, k)
		}
	}
	if len(pool) == 0 {
		pool = append(pool, s.keys...)
	}

	picked := s.draw(pool)
	for _, k := range picked {
		counters[k]++
	}
	return picked
}

// Draw picks 1..3 distinct keys from the whole taxonomy without touching any
// counters.
func (s *Sampler) Draw() []string {
	return s.draw(append([]string(nil), s.keys...))
}

// draw shuffles the head of pool in place and returns it.
func (s *Sampler) draw(pool []string) []string {
	k := s.minK + s.rng.Intn(s.maxK-s.minK+1)
	if k > len(pool) {
		k = len(pool)
	}
	for i := 0; i < k; i++ {
		j := i + s.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k:k]
}
