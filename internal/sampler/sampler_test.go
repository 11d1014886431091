package sampler

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("aspect_%02d", i)
	}
	return out
}

func newSampler(t *testing.T, ks []string, seed int64, opts ...Option) *Sampler {
	t.Helper()
	s, err := New(ks, rand.New(rand.NewSource(seed)), opts...)
	require.NoError(t, err)
	return s
}

func assertDistinct(t *testing.T, picked []string) {
	t.Helper()
	seen := map[string]bool{}
	for _, k := range picked {
		assert.False(t, seen[k], "duplicate key %s in %v", k, picked)
		seen[k] = true
	}
}

func TestTarget(t *testing.T) {
	assert.Equal(t, 15000, Target(750000, 50))
	assert.Equal(t, 2, Target(101, 50))
	assert.Equal(t, 0, Target(10, 49))
	assert.Equal(t, 0, Target(10, 0))
}

func TestNewValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := New(nil, rng)
	assert.ErrorIs(t, err, ErrNoKeys)

	_, err = New(keys(3), nil)
	assert.Error(t, err)

	_, err = New(keys(3), rng, WithKRange(0, 3))
	assert.Error(t, err)

	_, err = New(keys(3), rng, WithKRange(3, 2))
	assert.Error(t, err)
}

func TestSelectRestrictsToUnderrepresented(t *testing.T) {
	ks := keys(10)
	s := newSampler(t, ks, 1)

	counters := NewCounters(ks)
	for _, k := range ks[:8] {
		counters[k] = 5
	}

	for i := 0; i < 20; i++ {
		c := Counters{}
		for k, v := range counters {
			c[k] = v
		}
		picked := s.Select(c, 5)
		require.NotEmpty(t, picked)
		assert.LessOrEqual(t, len(picked), 2)
		assertDistinct(t, picked)
		for _, k := range picked {
			assert.Contains(t, []string{ks[8], ks[9]}, k)
			assert.Equal(t, 1, c[k])
		}
	}
}

func TestSelectFallsBackToFullTaxonomy(t *testing.T) {
	ks := keys(5)
	s := newSampler(t, ks, 2)

	counters := NewCounters(ks)
	sizes := map[int]bool{}
	for i := 0; i < 200; i++ {
		picked := s.Select(counters, 0)
		require.GreaterOrEqual(t, len(picked), 1)
		require.LessOrEqual(t, len(picked), 3)
		assertDistinct(t, picked)
		sizes[len(picked)] = true
	}
	assert.Len(t, sizes, 3, "expected draws of 1, 2 and 3 keys")
}

func TestSelectClampsToTinyTaxonomy(t *testing.T) {
	s := newSampler(t, keys(1), 3)
	counters := NewCounters(keys(1))

	for i := 0; i < 50; i++ {
		picked := s.Select(counters, 0)
		assert.Equal(t, []string{"aspect_00"}, picked)
	}
	assert.Equal(t, 50, counters["aspect_00"])
}

func TestSelectCountersMatchDraws(t *testing.T) {
	ks := keys(7)
	s := newSampler(t, ks, 4)
	counters := NewCounters(ks)

	drawn := 0
	for i := 0; i < 500; i++ {
		drawn += len(s.Select(counters, 20))
	}
	assert.Equal(t, drawn, counters.Total())
}

func TestBalancedRunReachesTarget(t *testing.T) {
	for _, tc := range []struct{ total, n int }{
		{total: 1000, n: 50},
		{total: 1234, n: 49},
		{total: 60, n: 7},
	} {
		t.Run(fmt.Sprintf("%d_over_%d", tc.total, tc.n), func(t *testing.T) {
			ks := keys(tc.n)
			s := newSampler(t, ks, int64(tc.total))
			counters := NewCounters(ks)
			target := Target(tc.total, tc.n)

			for i := 0; i < tc.total; i++ {
				s.Select(counters, target)
			}
			assert.GreaterOrEqual(t, counters.Min(), target)
		})
	}
}

func TestSelectDeterministicForSeed(t *testing.T) {
	ks := keys(20)
	a := newSampler(t, ks, 99)
	b := newSampler(t, ks, 99)
	ca, cb := NewCounters(ks), NewCounters(ks)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Select(ca, 3), b.Select(cb, 3))
	}
}

func TestWithKRange(t *testing.T) {
	s := newSampler(t, keys(10), 5, WithKRange(2, 2))
	for i := 0; i < 50; i++ {
		assert.Len(t, s.Draw(), 2)
	}
}

func TestDrawLeavesKeysIntact(t *testing.T) {
	ks := keys(4)
	s := newSampler(t, ks, 6)
	for i := 0; i < 20; i++ {
		picked := s.Draw()
		assertDistinct(t, picked)
	}
	assert.Equal(t, keys(4), s.keys)
}

func TestCountersSorted(t *testing.T) {
	c := Counters{"b": 2, "a": 2, "c": 5, "d": 0}
	assert.Equal(t, []string{"c", "a", "b", "d"}, c.Sorted())
	assert.Equal(t, 0, c.Min())
	assert.Equal(t, 9, c.Total())
	assert.Equal(t, 0, Counters{}.Min())
}
