package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mlorentedev/hotelreviews/internal/generator"
	"github.com/mlorentedev/hotelreviews/internal/sink"
	"github.com/mlorentedev/hotelreviews/internal/taxonomy"
)

// ReviewSource renders reviews outside of a full run.
type ReviewSource interface {
	Sample(id int) (generator.Record, error)
	Batch(size int) ([]generator.Record, error)
	Taxonomy() *taxonomy.Taxonomy
	Style() string
}

const (
	defaultBatchSize = 100
	batchFileName    = "test_reviews.json"
	batchPreview     = 3
)

func Sample(source ReviewSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodGet) {
			return
		}

		id := 1
		if v := r.URL.Query().Get("id"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid id %q", v))
				return
			}
			id = n
		}

		rec, err := source.Sample(id)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

type aspectsResponse struct {
	TotalAspects int                 `json:"total_aspects"`
	Aspects      map[string][]string `json:"aspects"`
}

func Aspects(source ReviewSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodGet) {
			return
		}
		tax := source.Taxonomy()
		writeJSON(w, http.StatusOK, aspectsResponse{
			TotalAspects: tax.Len(),
			Aspects:      tax.SynonymMap(),
		})
	}
}

type testBatchResponse struct {
	Message string             `json:"message"`
	File    string             `json:"file"`
	Sample  []generator.Record `json:"sample"`
}

// TestBatch writes a small unbalanced batch into dir and returns a preview.
func TestBatch(source ReviewSource, dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}

		size := defaultBatchSize
		if v := r.URL.Query().Get("size"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid size %q", v))
				return
			}
			size = n
		}

		recs, err := source.Batch(size)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("test batch: %v", err))
			return
		}
		path := filepath.Join(dir, batchFileName)
		if err := sink.WriteJSON(path, recs); err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("test batch: %v", err))
			return
		}

		preview := recs
		if len(preview) > batchPreview {
			preview = preview[:batchPreview]
		}
		writeJSON(w, http.StatusOK, testBatchResponse{
			Message: fmt.Sprintf("Generated %d test reviews", len(recs)),
			File:    path,
			Sample:  preview,
		})
	}
}
