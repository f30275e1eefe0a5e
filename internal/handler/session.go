package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vortex/wordcore/internal/selection"
	"github.com/vortex/wordcore/internal/service"
	"github.com/vortex/wordcore/pkg/response"
)

// SessionHandler exposes the stateful editing endpoints: open a document
// into a session, apply operations and commands against it, undo/redo, and
// export or summarize its current state.
type SessionHandler struct {
	store *service.Store
}

// NewSessionHandler creates a handler backed by the given session store.
func NewSessionHandler(store *service.Store) *SessionHandler {
	return &SessionHandler{store: store}
}

// Open handles POST /api/v1/documents/open for the session-backed surface:
// it uploads a .docx, opens it into a new editing session, and returns the
// session id plus its structural summary.
func (h *SessionHandler) Open(w http.ResponseWriter, r *http.Request) {
	data, err := readUploadedFile(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	id, summary, err := h.store.Open(data)
	if err != nil {
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"session_id": id,
		"summary":    summary,
	})
}

type exportRequest struct {
	SessionID string `json:"session_id"`
}

// Export handles POST /api/v1/documents/export: given a session id (in the
// JSON body or the session_id query parameter), serializes that session's
// current document back to .docx bytes.
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session_id")
	if id == "" {
		var req exportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "decoding request: "+err.Error())
			return
		}
		id = req.SessionID
	}
	if id == "" {
		response.Error(w, http.StatusBadRequest, "session_id is required")
		return
	}

	data, err := h.store.Export(id)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", `attachment; filename="document.docx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Operations handles POST /api/v1/documents/{id}/operations: applies a
// single operation, decoded from the request body, to the session and
// returns the selection afterward.
func (h *SessionHandler) Operations(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req opRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "decoding operation: "+err.Error())
		return
	}

	op, err := req.toOp()
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	sel, err := h.store.ApplyOperation(id, op)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, selectionResponse(sel))
}

// Command handles POST /api/v1/documents/{id}/commands/{commandId}: runs a
// registered plugin command against the session's editor with the request
// body as its args, decoded into whatever shape that command expects.
func (h *SessionHandler) Command(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	commandID := r.PathValue("commandId")

	var args any
	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "reading body: "+err.Error())
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &args); err != nil {
			response.Error(w, http.StatusBadRequest, "decoding args: "+err.Error())
			return
		}
	}

	sel, err := h.store.ExecuteCommand(id, commandID, args)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, selectionResponse(sel))
}

// Undo handles POST /api/v1/documents/{id}/undo.
func (h *SessionHandler) Undo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sel, err := h.store.Undo(id)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, selectionResponse(sel))
}

// Redo handles POST /api/v1/documents/{id}/redo.
func (h *SessionHandler) Redo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sel, err := h.store.Redo(id)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, selectionResponse(sel))
}

func selectionResponse(sel selection.Selection) map[string]any {
	return map[string]any{"selection": sel}
}

func writeSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrSessionNotFound) {
		response.Error(w, http.StatusNotFound, err.Error())
		return
	}
	response.Error(w, http.StatusUnprocessableEntity, err.Error())
}
