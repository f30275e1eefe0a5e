package handler

import (
	"log/slog"
	"net/http"

	"github.com/vortex/wordcore/internal/middleware"
	"github.com/vortex/wordcore/internal/service"
)

// NewRouter builds the HTTP mux with all routes and middleware. pkgSvc backs
// the stateless packaging self-test endpoints (roundtrip/validate); store
// backs the session-oriented editing endpoints (operations/commands/
// undo/redo/export) and the open endpoint, which creates a session and
// reports its summary in one call.
func NewRouter(logger *slog.Logger, pkgSvc service.PackagingService, store *service.Store, maxBodyBytes int64) http.Handler {
	mux := http.NewServeMux()

	pkg := NewPackagingHandler(pkgSvc)
	sess := NewSessionHandler(store)

	// Health endpoints
	mux.HandleFunc("GET /health", Health)
	mux.HandleFunc("GET /ready", Health)

	// Session lifecycle and editing endpoints
	mux.HandleFunc("POST /api/v1/documents/open", sess.Open)
	mux.HandleFunc("POST /api/v1/documents/export", sess.Export)
	mux.HandleFunc("POST /api/v1/documents/{id}/operations", sess.Operations)
	mux.HandleFunc("POST /api/v1/documents/{id}/commands/{commandId}", sess.Command)
	mux.HandleFunc("POST /api/v1/documents/{id}/undo", sess.Undo)
	mux.HandleFunc("POST /api/v1/documents/{id}/redo", sess.Redo)

	// Stateless packaging self-test endpoints
	mux.HandleFunc("POST /api/v1/documents/roundtrip", pkg.RoundTrip)
	mux.HandleFunc("POST /api/v1/documents/validate", pkg.Validate)

	// Apply middleware chain (outermost first)
	var h http.Handler = mux
	h = middleware.MaxBodySize(maxBodyBytes)(h)
	h = middleware.CORS(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.Logging(logger)(h)

	return h
}
