// Package render turns (aspect, problem) pairs into short complaint text.
package render

import (
	"math/rand"
	"strings"

	"github.com/pkg/errors"
)

// MaxTokens caps the length of a rendered review in whitespace-separated
// tokens.
const MaxTokens = 60

// ErrPairs is returned when aspects and problems are empty or differ in
// length.
var ErrPairs = errors.New("render: aspects and problems must be non-empty and of equal length")

// Engine renders reviews from a Catalog. It is not safe for concurrent use
// because it draws from a single *rand.Rand.
type Engine struct {
	catalog   Catalog
	rng       *rand.Rand
	maxTokens int
}

// NewEngine returns an engine over catalog that draws all its choices from
// rng.
func NewEngine(catalog Catalog, rng *rand.Rand) (*Engine, error) {
	if err := catalog.Validate(); err != nil {
		return nil, errors.Wrapf(err, "catalog %q", catalog.Name)
	}
	if rng == nil {
		return nil, errors.New("render: nil random source")
	}
	return &Engine{catalog: catalog, rng: rng, maxTokens: MaxTokens}, nil
}

// Catalog returns the catalog the engine renders with.
func (e *Engine) Catalog() Catalog { return e.catalog }

// Render fills a random structure with the first pair and appends one
// connector clause for every further pair. The result never exceeds
// MaxTokens tokens.
func (e *Engine) Render(aspects, problems []string) (string, error) {
	if len(aspects) == 0 || len(aspects) != len(problems) {
		return "", ErrPairs
	}

	var b strings.Builder
	b.WriteString(fill(e.pick(e.catalog.Structures), "", aspects[0], problems[0]))

	if len(aspects) > 1 {
		for i := 1; i < len(aspects); i++ {
			clause := e.pick(e.catalog.Clauses)
			b.WriteString(fill(clause, e.pick(e.catalog.Connectors), aspects[i], problems[i]))
		}
		if e.catalog.EndingChance > 0 && e.rng.Float64() < e.catalog.EndingChance {
			b.WriteString(e.pick(e.catalog.Endings))
		}
	}

	return Truncate(b.String(), e.maxTokens), nil
}

func (e *Engine) pick(options []string) string {
	return options[e.rng.Intn(len(options))]
}

func fill(tmpl, connector, aspect, problem string) string {
	return strings.NewReplacer(
		"{connector}", connector,
		"{aspect}", aspect,
		"{problem}", problem,
	).Replace(tmpl)
}

// Truncate keeps the first max whitespace-separated tokens of text. A
// truncated result is rejoined with single spaces and ends with a period.
// Text within the limit is returned unchanged.
func Truncate(text string, max int) string {
	words := strings.Fields(text)
	if len(words) <= max {
		return text
	}
	out := strings.Join(words[:max], " ")
	if !strings.HasSuffix(out, ".") {
		out += "."
	}
	return out
}

// Tokens counts the whitespace-separated tokens of text.
func Tokens(text string) int {
	return len(strings.Fields(text))
}
