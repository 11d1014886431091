package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCORS(t *testing.T) {
	var reached bool
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	for _, method := range []string{http.MethodGet, http.MethodOptions} {
		reached = false
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(method, "/api/generation/status", nil))

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("%s Allow-Origin: got %q", method, got)
		}
		if got := w.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, "X-API-Key") {
			t.Errorf("%s Allow-Headers %q lacks X-API-Key", method, got)
		}
		if got := w.Header().Get("Access-Control-Expose-Headers"); got != "X-Request-ID" {
			t.Errorf("%s Expose-Headers: got %q", method, got)
		}
		wantReached := method != http.MethodOptions
		if reached != wantReached {
			t.Errorf("%s reached handler: got %v, want %v", method, reached, wantReached)
		}
		if method == http.MethodOptions && w.Code != http.StatusNoContent {
			t.Errorf("preflight status: got %d, want %d", w.Code, http.StatusNoContent)
		}
	}
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		reused   bool
	}{
		{"generated when absent", "", false},
		{"well-formed id kept", "trace-abc_123", true},
		{"header injection replaced", "bad id\r\nX-Evil: 1", false},
		{"oversized replaced", strings.Repeat("a", 65), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fromCtx string
			h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fromCtx = RequestIDFromContext(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set("X-Request-ID", tt.incoming)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			got := w.Header().Get("X-Request-ID")
			if got != fromCtx {
				t.Errorf("header %q differs from context %q", got, fromCtx)
			}
			if tt.reused {
				if got != tt.incoming {
					t.Errorf("got %q, want incoming %q", got, tt.incoming)
				}
				return
			}
			if len(got) != 32 {
				t.Errorf("generated id %q: length %d, want 32", got, len(got))
			}
		})
	}
}

func TestRequestIDFromContextEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := RequestIDFromContext(req.Context()); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestLevelFor(t *testing.T) {
	tests := map[int]slog.Level{
		http.StatusOK:                  slog.LevelInfo,
		http.StatusAccepted:            slog.LevelInfo,
		http.StatusConflict:            slog.LevelWarn,
		http.StatusTooManyRequests:     slog.LevelWarn,
		http.StatusInternalServerError: slog.LevelError,
	}
	for status, want := range tests {
		if got := levelFor(status); got != want {
			t.Errorf("levelFor(%d): got %v, want %v", status, got, want)
		}
	}
}

func TestLoggingKeepsStatus(t *testing.T) {
	h := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/generation/start", nil))

	if w.Code != http.StatusAccepted {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusAccepted)
	}
}

func TestMaxBytes(t *testing.T) {
	h := MaxBytes(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	tests := map[string]int{
		`{"chunk_size":1}`:                 http.StatusOK,
		`{"total_reviews":750000,"x":"y"}`: http.StatusRequestEntityTooLarge,
	}
	for body, want := range tests {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		if w.Code != want {
			t.Errorf("body %q: got %d, want %d", body, w.Code, want)
		}
	}
}

func TestChainOrder(t *testing.T) {
	mux := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	h := Chain(mux, NewRateLimiter(1, time.Minute), "s3cret")

	do := func(method, key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/api/generation/start", nil)
		req.RemoteAddr = "198.51.100.7:1000"
		if key != "" {
			req.Header.Set("X-API-Key", key)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	// Preflight is answered before auth.
	if w := do(http.MethodOptions, ""); w.Code != http.StatusNoContent {
		t.Errorf("preflight: got %d, want %d", w.Code, http.StatusNoContent)
	}

	w := do(http.MethodPost, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no key: got %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("rejected request has no X-Request-ID")
	}

	// The unauthenticated POST above already used the client's only slot.
	if w := do(http.MethodPost, "s3cret"); w.Code != http.StatusTooManyRequests {
		t.Errorf("after limit: got %d, want %d", w.Code, http.StatusTooManyRequests)
	}
}

func TestChainWithoutLimiter(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}), nil, "")

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/generation/start", nil))
		if w.Code != http.StatusAccepted {
			t.Fatalf("request %d: got %d, want %d", i, w.Code, http.StatusAccepted)
		}
	}
}
