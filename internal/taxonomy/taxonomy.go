// Package taxonomy holds the fixed set of hotel aspects a dataset run draws
// from: for every aspect key, the display synonyms a review may use and the
// problem phrases it may complain about.
package taxonomy

import (
	"fmt"
	"strings"
)

// Entry is one aspect of the taxonomy.
type Entry struct {
	Key      string   `json:"key"`
	Synonyms []string `json:"synonyms"`
	Problems []string `json:"problems"`
}

// Taxonomy is an immutable, ordered set of aspect entries. Keys keep the order
// in which they were declared so seeded runs are reproducible.
type Taxonomy struct {
	name    string
	keys    []string
	entries map[string]Entry
}

// New builds a taxonomy from two parallel mappings. Every key must appear in
// both mappings with non-empty phrase sets.
func New(name string, synonyms, problems *Mapping) (*Taxonomy, error) {
	if synonyms.Len() == 0 && problems.Len() == 0 {
		return nil, ErrEmpty
	}

	for _, key := range problems.Keys() {
		if _, ok := synonyms.Get(key); !ok {
			return nil, &IntegrityError{Key: key, Reason: "has problems but no synonym set"}
		}
	}

	t := &Taxonomy{
		name:    name,
		keys:    make([]string, 0, synonyms.Len()),
		entries: make(map[string]Entry, synonyms.Len()),
	}
	for _, key := range synonyms.Keys() {
		if strings.TrimSpace(key) == "" {
			return nil, &IntegrityError{Key: key, Reason: "blank aspect key"}
		}
		syn, _ := synonyms.Get(key)
		prob, ok := problems.Get(key)
		if !ok {
			return nil, &IntegrityError{Key: key, Reason: "has synonyms but no problem set"}
		}
		if err := checkPhrases(key, "synonym", syn); err != nil {
			return nil, err
		}
		if err := checkPhrases(key, "problem", prob); err != nil {
			return nil, err
		}
		t.keys = append(t.keys, key)
		t.entries[key] = Entry{
			Key:      key,
			Synonyms: append([]string(nil), syn...),
			Problems: append([]string(nil), prob...),
		}
	}

	return t, nil
}

func checkPhrases(key, kind string, phrases []string) error {
	if len(phrases) == 0 {
		return &IntegrityError{Key: key, Reason: "has an empty " + kind + " set"}
	}
	for i, p := range phrases {
		if strings.TrimSpace(p) == "" {
			return &IntegrityError{Key: key, Reason: fmt.Sprintf("has a blank %s at index %d", kind, i)}
		}
	}
	return nil
}

// Name returns the taxonomy name, e.g. "descriptive".
func (t *Taxonomy) Name() string { return t.name }

// Len returns the number of aspect keys.
func (t *Taxonomy) Len() int { return len(t.keys) }

// Keys returns the aspect keys in declaration order.
func (t *Taxonomy) Keys() []string {
	return append([]string(nil), t.keys...)
}

// Entry looks up one aspect.
func (t *Taxonomy) Entry(key string) (Entry, bool) {
	e, ok := t.entries[key]
	return e, ok
}

// Synonyms returns the display forms of key, or nil for an unknown key.
func (t *Taxonomy) Synonyms(key string) []string {
	return t.entries[key].Synonyms
}

// Problems returns the problem phrases of key, or nil for an unknown key.
func (t *Taxonomy) Problems(key string) []string {
	return t.entries[key].Problems
}

// SynonymMap returns aspect key -> synonyms, the shape served by the aspects
// endpoint.
func (t *Taxonomy) SynonymMap() map[string][]string {
	out := make(map[string][]string, len(t.keys))
	for _, k := range t.keys {
		out[k] = append([]string(nil), t.entries[k].Synonyms...)
	}
	return out
}
