// Package middleware holds the chain of http.Handler wrappers cmd/server
// installs around the router: structured access logging, panic recovery,
// CORS headers, and a request-body size cap.
package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// Logging returns a middleware that logs one structured line per request
// via logger, the way cmd/server's own slog.NewJSONHandler logs startup
// and shutdown events.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)
			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Int("bytes", rec.size),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
