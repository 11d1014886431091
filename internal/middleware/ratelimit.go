package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiter keeps a sliding window of request times per client.
type RateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	hits map[string][]time.Time
}

// NewRateLimiter allows limit requests per client within window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
		now:    time.Now,
		hits:   make(map[string][]time.Time),
	}
}

// Allow records a request from client and reports whether it fits the
// window. A rejected request returns how long until the oldest hit expires.
func (rl *RateLimiter) Allow(client string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for c := range rl.hits {
		rl.prune(c, now)
	}
	live := rl.hits[client]
	if len(live) >= rl.limit {
		return false, live[0].Add(rl.window).Sub(now)
	}
	rl.hits[client] = append(live, now)
	return true, 0
}

// prune drops hits older than the window and forgets idle clients.
func (rl *RateLimiter) prune(client string, now time.Time) {
	cutoff := now.Add(-rl.window)
	hits := rl.hits[client]
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	if i == len(hits) {
		delete(rl.hits, client)
		return
	}
	rl.hits[client] = hits[i:]
}

// RateLimit answers 429 with a Retry-After header once a client exceeds its
// limit. Only POST requests start work, so only they are counted.
func RateLimit(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}
			if ok, wait := rl.Allow(clientIP(r)); !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
