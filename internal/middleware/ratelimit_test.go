package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(limit int, window time.Duration) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(limit, window)
	rl.now = clock.now
	return rl, clock
}

func TestRateLimiterWindow(t *testing.T) {
	rl, clock := newTestLimiter(2, time.Minute)

	steps := []struct {
		advance  time.Duration
		client   string
		wantOK   bool
		wantWait time.Duration
	}{
		{0, "a", true, 0},
		{10 * time.Second, "a", true, 0},
		{10 * time.Second, "a", false, 40 * time.Second},
		{0, "b", true, 0},
		{41 * time.Second, "a", true, 0},
		{0, "a", false, 9 * time.Second},
	}
	for i, s := range steps {
		clock.advance(s.advance)
		ok, wait := rl.Allow(s.client)
		if ok != s.wantOK || wait != s.wantWait {
			t.Errorf("step %d (%s): got (%v, %v), want (%v, %v)", i, s.client, ok, wait, s.wantOK, s.wantWait)
		}
	}
}

func TestRateLimiterForgetsIdleClients(t *testing.T) {
	rl, clock := newTestLimiter(1, time.Second)
	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.2")

	clock.advance(2 * time.Second)
	rl.Allow("10.0.0.1")

	if _, ok := rl.hits["10.0.0.2"]; ok {
		t.Error("idle client still tracked after its window expired")
	}
	if got := len(rl.hits["10.0.0.1"]); got != 1 {
		t.Errorf("hits for 10.0.0.1: got %d, want 1", got)
	}
}

func TestRateLimitCountsOnlyPOST(t *testing.T) {
	rl, _ := newTestLimiter(1, time.Minute)
	h := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	do := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.RemoteAddr = "192.0.2.1:4321"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	if w := do(http.MethodPost, "/api/generation/start"); w.Code != http.StatusAccepted {
		t.Fatalf("first start: got %d, want %d", w.Code, http.StatusAccepted)
	}
	w := do(http.MethodPost, "/api/generation/test-batch")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second POST: got %d, want %d", w.Code, http.StatusTooManyRequests)
	}
	if got := w.Header().Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After: got %q, want %q", got, "60")
	}
	for i := 0; i < 5; i++ {
		if w := do(http.MethodGet, "/api/generation/status"); w.Code != http.StatusAccepted {
			t.Errorf("status poll %d: got %d, want %d", i, w.Code, http.StatusAccepted)
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := map[string]string{
		"10.1.2.3:5555":    "10.1.2.3",
		"[2001:db8::1]:80": "2001:db8::1",
		"unix-socket":      "unix-socket",
	}
	for addr, want := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		if got := clientIP(req); got != want {
			t.Errorf("clientIP(%q): got %q, want %q", addr, got, want)
		}
	}
}
