package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mlorentedev/hotelreviews/internal/metrics"
)

// Metrics records request count by method, path, and status code. Paths
// outside the API are folded into one label value.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		metrics.RequestsTotal.WithLabelValues(r.Method, pathLabel(r.URL.Path), strconv.Itoa(sw.status)).Inc()
	})
}

func pathLabel(path string) string {
	if strings.HasPrefix(path, "/api/") || path == "/metrics" {
		return path
	}
	return "other"
}
