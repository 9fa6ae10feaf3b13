// Package api provides HTTP API handlers for the gesture calculator.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/handycalc/internal/replay"
	"github.com/ayusman/handycalc/internal/session"
	"github.com/ayusman/handycalc/internal/store"
)

// Controller is the calculator session as seen by the API.
type Controller interface {
	Snapshot() session.Snapshot
	Clear() session.Snapshot
	Evaluate() session.Snapshot
	HoldDuration() time.Duration
	SetHoldDuration(d time.Duration)
}

// Recorder captures landmark frames and replays stored recordings.
type Recorder interface {
	StartRecording(name string) (*store.Recording, error)
	StopRecording() (*store.Recording, error)
	Recording() (*store.Recording, bool)
	ReplayRecording(id string) (replay.Result, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
