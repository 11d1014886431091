package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/mlorentedev/hotelreviews/internal/generator"
	"github.com/mlorentedev/hotelreviews/internal/job"
	"github.com/mlorentedev/hotelreviews/internal/sink"
)

// Runner is the part of job.Runner the generation endpoints use.
type Runner interface {
	Start(ctx context.Context, req job.Request) (string, error)
	Cancel() error
	Status() job.Status
}

// Defaults are applied to fields a start request leaves out.
type Defaults struct {
	TotalRecords int
	ChunkSize    int
	OutputRoot   string
	OutputDir    string
}

type startRequest struct {
	TotalReviews *int   `json:"total_reviews"`
	ChunkSize    *int   `json:"chunk_size"`
	OutputDir    string `json:"output_dir"`
}

type startResponse struct {
	Message      string `json:"message"`
	RunID        string `json:"run_id"`
	TotalReviews int    `json:"total_reviews"`
	OutputDir    string `json:"output_dir"`
}

func StartGeneration(runner Runner, defaults Defaults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}

		var req startRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		total, chunk := defaults.TotalRecords, defaults.ChunkSize
		if req.TotalReviews != nil {
			total = *req.TotalReviews
		}
		if req.ChunkSize != nil {
			chunk = *req.ChunkSize
		}
		dir, err := resolveDir(defaults.OutputRoot, req.OutputDir, defaults.OutputDir)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}

		id, err := runner.Start(r.Context(), job.Request{
			TotalRecords: total,
			ChunkSize:    chunk,
			Sink:         &sink.DirSink{Dir: dir},
		})
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}

		writeJSON(w, http.StatusAccepted, startResponse{
			Message:      "Dataset generation started",
			RunID:        id,
			TotalReviews: total,
			OutputDir:    dir,
		})
	}
}

// resolveDir places a caller-supplied directory beneath root. Absolute paths
// and paths escaping root are rejected.
func resolveDir(root, dir, fallback string) (string, error) {
	if dir == "" {
		dir = fallback
	}
	if !filepath.IsLocal(dir) {
		return "", &generator.ConfigError{Field: "output_dir", Message: "must be a relative path inside the output root"}
	}
	return filepath.Join(root, dir), nil
}

func GenerationStatus(runner Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodGet) {
			return
		}
		writeJSON(w, http.StatusOK, runner.Status())
	}
}

func CancelGeneration(runner Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		if err := runner.Cancel(); err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusAccepted, messageResponse{Message: "Cancellation requested"})
	}
}
