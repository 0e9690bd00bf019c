package middleware

import (
	"net/http"
	"time"

	"github.com/heartmarshall/langcoach-backend/internal/observe"
)

// Metrics records request latency by method, matched route and status.
// It must wrap the mux directly (no WithContext in between) so that the
// route pattern set by http.ServeMux is visible after the call.
func Metrics(m *observe.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := wrapWriter(w)

			next.ServeHTTP(sw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			m.RecordHTTPRequest(r.Context(), r.Method, route, sw.status, time.Since(start))
		})
	}
}
