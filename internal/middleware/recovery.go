package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/vortex/wordcore/pkg/response"
)

// Recovery returns a middleware that recovers from a panic in next,
// logs the panic value and stack trace via logger, and writes a 500
// response instead of letting the panic reach net/http's default handler.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						slog.Any("panic", err),
						slog.String("path", r.URL.Path),
						slog.String("stack", string(debug.Stack())),
					)
					response.Error(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
