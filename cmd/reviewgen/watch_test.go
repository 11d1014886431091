package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlorentedev/hotelreviews/internal/job"
	"github.com/mlorentedev/hotelreviews/internal/progress"
)

func TestFollowUntilFinished(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generation/status", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		n := atomic.AddInt32(&calls, 1)
		st := job.Status{RunID: "r1", Running: n < 3, Produced: int(n) * 100, Total: 300, Phase: job.PhaseGenerating}
		if n >= 3 {
			st.Phase = job.PhaseCompleted
			st.Completed = true
			st.Outputs = []string{"part_01"}
		}
		_ = json.NewEncoder(w).Encode(st)
	}))
	defer srv.Close()

	client := &statusClient{http: srv.Client(), baseURL: srv.URL, apiKey: "secret"}
	var buf bytes.Buffer
	bar := progress.New(&buf, 0, "reviews")

	status, err := follow(context.Background(), client.Status, bar, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, job.PhaseCompleted, status.Phase)
	assert.Equal(t, 300, status.Produced)
	assert.Equal(t, []string{"part_01"}, status.Outputs)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
	assert.Contains(t, buf.String(), "100% (300/300)")
}

func TestFollowIdleReturnsImmediately(t *testing.T) {
	poll := func(context.Context) (job.Status, error) {
		return job.Status{Phase: job.PhaseIdle}, nil
	}
	status, err := follow(context.Background(), poll, progress.New(&bytes.Buffer{}, 0, "x"), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, job.PhaseIdle, status.Phase)
}

func TestFollowRedrawsOnlyOnProgress(t *testing.T) {
	produced := []int{0, 0, 40, 40, 100}
	i := 0
	poll := func(context.Context) (job.Status, error) {
		st := job.Status{Running: i < len(produced)-1, Produced: produced[i], Total: 100, Phase: job.PhaseGenerating}
		i++
		return st, nil
	}
	var buf bytes.Buffer

	_, err := follow(context.Background(), poll, progress.New(&buf, 0, "x"), time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(buf.String(), "\r  x ["))
}

func TestFollowStopsOnContext(t *testing.T) {
	poll := func(context.Context) (job.Status, error) {
		return job.Status{Running: true, Total: 10, Phase: job.PhaseGenerating}, nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := follow(ctx, poll, progress.New(&bytes.Buffer{}, 0, "x"), time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatusClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"invalid or missing API key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := &statusClient{http: srv.Client(), baseURL: srv.URL}
	_, err := client.Status(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid or missing API key")
}
