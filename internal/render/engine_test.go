package render

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, c Catalog, seed int64) *Engine {
	t.Helper()
	e, err := NewEngine(c, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return e
}

func TestRenderSingleVariety(t *testing.T) {
	e := newEngine(t, DescriptiveCatalog(), 1)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		text, err := e.Render([]string{"wifi"}, []string{"very slow"})
		require.NoError(t, err)
		assert.LessOrEqual(t, Tokens(text), MaxTokens)
		assert.Contains(t, text, "very slow")
		seen[text] = true
	}
	assert.GreaterOrEqual(t, len(seen), 2)
}

func TestRenderSingleUsesStructure(t *testing.T) {
	c := Catalog{
		Name:       "fixed",
		Structures: []string{"The {aspect} was {problem}"},
		Connectors: []string{" and "},
		Clauses:    []string{"{connector}{aspect} with {problem}"},
	}
	e := newEngine(t, c, 7)

	text, err := e.Render([]string{"lift"}, []string{"broken"})
	require.NoError(t, err)
	assert.Equal(t, "The lift was broken", text)
}

func TestRenderMultiAspect(t *testing.T) {
	c := Catalog{
		Name:       "fixed",
		Structures: []string{"The {aspect} was {problem}"},
		Connectors: []string{" and "},
		Clauses:    []string{"{connector}{aspect} with {problem}"},
	}
	e := newEngine(t, c, 7)

	text, err := e.Render(
		[]string{"lift", "wifi", "bar"},
		[]string{"broken", "drops", "sticky floors"},
	)
	require.NoError(t, err)
	assert.Equal(t, "The lift was broken and wifi with drops and bar with sticky floors", text)
}

func TestRenderEnding(t *testing.T) {
	c := Catalog{
		Name:         "ending",
		Structures:   []string{"{aspect} {problem}"},
		Connectors:   []string{" "},
		Clauses:      []string{"{connector}{aspect} {problem}"},
		Endings:      []string{" Otherwise fine"},
		EndingChance: 1,
	}
	e := newEngine(t, c, 3)

	single, err := e.Render([]string{"bar"}, []string{"closed"})
	require.NoError(t, err)
	assert.Equal(t, "bar closed", single)

	multi, err := e.Render([]string{"bar", "pool"}, []string{"closed", "cold"})
	require.NoError(t, err)
	assert.Equal(t, "bar closed pool cold Otherwise fine", multi)
}

func TestRenderDeterministicForSeed(t *testing.T) {
	a := newEngine(t, BookingCatalog(), 42)
	b := newEngine(t, BookingCatalog(), 42)

	for i := 0; i < 50; i++ {
		aspects := []string{"room", "staff"}
		problems := []string{"too small", "rude"}
		x, err := a.Render(aspects, problems)
		require.NoError(t, err)
		y, err := b.Render(aspects, problems)
		require.NoError(t, err)
		assert.Equal(t, x, y)
	}
}

func TestRenderPairsMismatch(t *testing.T) {
	e := newEngine(t, DescriptiveCatalog(), 1)

	_, err := e.Render(nil, nil)
	assert.ErrorIs(t, err, ErrPairs)

	_, err = e.Render([]string{"a", "b"}, []string{"x"})
	assert.ErrorIs(t, err, ErrPairs)
}

func TestRenderCapsLongInput(t *testing.T) {
	long := strings.Repeat("very ", 40) + "slow"
	for _, c := range []Catalog{DescriptiveCatalog(), BookingCatalog()} {
		e := newEngine(t, c, 5)
		for i := 0; i < 200; i++ {
			text, err := e.Render(
				[]string{"wifi", "wifi", "wifi"},
				[]string{long, long, long},
			)
			require.NoError(t, err)
			assert.LessOrEqual(t, Tokens(text), MaxTokens)
			assert.True(t, strings.HasSuffix(text, "."), "truncated text should end with a period: %q", text)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "within limit untouched", in: "a  b c", max: 3, want: "a  b c"},
		{name: "cut and period", in: "a b c d", max: 2, want: "a b."},
		{name: "existing period kept", in: "a b. c d", max: 2, want: "a b."},
		{name: "whitespace collapsed", in: "a\tb\n c d", max: 3, want: "a b c."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.max))
		})
	}
}

func TestCatalogValidate(t *testing.T) {
	for _, name := range []string{Descriptive, Booking} {
		c, err := CatalogFor(name)
		require.NoError(t, err)
		assert.NoError(t, c.Validate())
		assert.Equal(t, name, c.Name)
	}

	_, err := CatalogFor("haiku")
	assert.Error(t, err)

	bad := []Catalog{
		{},
		{Structures: []string{"x"}},
		{Structures: []string{"x"}, Connectors: []string{" "}},
		{Structures: []string{"x"}, Connectors: []string{" "}, Clauses: []string{"{aspect}"}},
		{Structures: []string{"x"}, Connectors: []string{" "}, Clauses: []string{"{connector}"}, EndingChance: 0.5},
		{Structures: []string{"x"}, Connectors: []string{" "}, Clauses: []string{"{connector}"}, EndingChance: 2, Endings: []string{"."}},
	}
	for i, c := range bad {
		assert.Error(t, c.Validate(), "catalog %d", i)
	}
}

func TestBuiltinCatalogsAreIndependentCopies(t *testing.T) {
	for _, build := range []func() Catalog{DescriptiveCatalog, BookingCatalog} {
		edited := build()
		first := edited.Structures[0]
		edited.Structures[0] = "{aspect} was replaced"

		fresh := build()
		assert.Equal(t, first, fresh.Structures[0], "catalog %s", fresh.Name)
	}
}

func TestNewEngineRejectsNilRand(t *testing.T) {
	_, err := NewEngine(DescriptiveCatalog(), nil)
	assert.Error(t, err)
}

func TestDescriptiveStructuresHaveBothSlots(t *testing.T) {
	for _, s := range DescriptiveCatalog().Structures {
		assert.Contains(t, s, "{aspect}")
		assert.Contains(t, s, "{problem}")
	}
}
