// Package sink persists generated records as numbered JSON chunks plus a
// dataset card.
package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/mlorentedev/hotelreviews/internal/generator"
	"github.com/mlorentedev/hotelreviews/internal/sampler"
)

// DefaultChunkSize is the number of records per chunk of a full run.
const DefaultChunkSize = 50000

// Sink defines the contract for dataset destinations.
type Sink interface {
	Name() string
	// WriteChunk stores one part and returns its identifier.
	WriteChunk(ctx context.Context, part Part) (string, error)
	// WriteCard stores the dataset card and returns its identifier.
	WriteCard(ctx context.Context, card Card) (string, error)
}

// Part is one contiguous slice of a run, numbered from 1.
type Part struct {
	Index   int
	Count   int
	Records []generator.Record
}

// Name is the file name of the part.
func (p Part) Name() string {
	return PartName(p.Index, p.Count)
}

// PartName formats the file name of part i of n.
func PartName(i, n int) string {
	return fmt.Sprintf("negative_hotel_reviews_part_%02d_of_%02d.json", i, n)
}

// Split partitions records into parts of at most size records, in order.
// The parts share the backing array of records.
func Split(records []generator.Record, size int) ([]Part, error) {
	if size <= 0 {
		return nil, &generator.ConfigError{Field: "chunk_size", Message: "must be a positive integer"}
	}
	n := (len(records) + size - 1) / size
	parts := make([]Part, 0, n)
	for i := 0; i < n; i++ {
		start := i * size
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		parts = append(parts, Part{Index: i + 1, Count: n, Records: records[start:end]})
	}
	return parts, nil
}

// Card summarises a finished dataset.
type Card struct {
	TotalRecords int
	Parts        []string
	Style        string
	Counts       sampler.Counters
	Target       int
	GeneratedAt  time.Time
}
