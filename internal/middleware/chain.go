package middleware

import (
	"net/http"
	"time"
)

// Chain wraps the handler with the full middleware stack.
// Order: CORS → RequestID → Logging → Metrics → RateLimit → APIKey → MaxBytes → Timeout → mux
// A nil rl disables rate limiting.
func Chain(handler http.Handler, rl *RateLimiter, apiKey string) http.Handler {
	h := handler
	h = http.TimeoutHandler(h, 30*time.Second, `{"error":"request timeout"}`)
	h = MaxBytes(16 * 1024)(h)
	h = APIKey(apiKey)(h)
	if rl != nil {
		h = RateLimit(rl)(h)
	}
	h = Metrics(h)
	h = Logging(h)
	h = RequestID(h)
	h = CORS(h)
	return h
}
