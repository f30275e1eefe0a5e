package middleware

import "net/http"

// MaxBodySize caps the request body at maxBytes via http.MaxBytesReader,
// so a malicious or mistaken upload can't exhaust memory before the
// packaging layer ever sees it.
func MaxBodySize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
