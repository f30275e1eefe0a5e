package middleware

import "net/http"

// statusRecorder wraps http.ResponseWriter to capture the status code and
// byte count a handler writes, so Recovery and Logging can report them
// without the handler cooperating.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	size    int
	written bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.written {
		r.status = code
		r.written = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.written {
		r.status = http.StatusOK
		r.written = true
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}
