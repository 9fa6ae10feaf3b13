package api

import (
	"net/http"
	"strings"
)

// SessionHandler serves the live calculator state and its manual commands.
//
//	GET  /api/session
//	POST /api/session/clear
//	POST /api/session/evaluate
type SessionHandler struct {
	ctrl Controller
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(ctrl Controller) *SessionHandler {
	return &SessionHandler{ctrl: ctrl}
}

// ServeHTTP implements the http.Handler interface.
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/session")
	path = strings.Trim(path, "/")

	switch path {
	case "":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		writeJSON(w, http.StatusOK, h.ctrl.Snapshot())
	case "clear":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		writeJSON(w, http.StatusOK, h.ctrl.Clear())
	case "evaluate":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		writeJSON(w, http.StatusOK, h.ctrl.Evaluate())
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}
