package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/handycalc/internal/app"
	"github.com/ayusman/handycalc/internal/logger"
	"github.com/ayusman/handycalc/internal/store"
)

// RecordingsHandler handles HTTP requests for landmark recordings.
//
//	GET    /api/recordings
//	POST   /api/recordings        {"name": "..."}
//	POST   /api/recordings/stop
//	GET    /api/recordings/{id}
//	DELETE /api/recordings/{id}
//	POST   /api/recordings/{id}/replay
type RecordingsHandler struct {
	rec   Recorder
	store *store.Store
	log   logger.Logger
}

// NewRecordingsHandler creates a new RecordingsHandler.
func NewRecordingsHandler(rec Recorder, s *store.Store, log logger.Logger) *RecordingsHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &RecordingsHandler{rec: rec, store: s, log: log}
}

type startRecordingRequest struct {
	Name string `json:"name"`
}

type listRecordingsResponse struct {
	Recordings []*store.Recording `json:"recordings"`
	Active     *store.Recording   `json:"active"`
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *RecordingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/recordings")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.start(w, r)
		default:
			methodNotAllowed(w)
		}
		return
	}

	if path == "stop" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		h.stop(w, r)
		return
	}

	id, action, _ := strings.Cut(path, "/")
	switch action {
	case "":
		switch r.Method {
		case http.MethodGet:
			h.get(w, r, id)
		case http.MethodDelete:
			h.delete(w, r, id)
		default:
			methodNotAllowed(w)
		}
	case "replay":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		h.replay(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

// list handles GET /api/recordings.
func (h *RecordingsHandler) list(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.Recordings().List()
	if err != nil {
		h.log.Error(r.Context(), "error listing recordings", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to list recordings")
		return
	}

	resp := listRecordingsResponse{Recordings: recs}
	if resp.Recordings == nil {
		resp.Recordings = []*store.Recording{}
	}
	if active, ok := h.rec.Recording(); ok {
		resp.Active = active
	}
	writeJSON(w, http.StatusOK, resp)
}

// start handles POST /api/recordings.
func (h *RecordingsHandler) start(w http.ResponseWriter, r *http.Request) {
	var req startRecordingRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "recording"
	}

	rec, err := h.rec.StartRecording(name)
	if err != nil {
		if errors.Is(err, app.ErrRecordingActive) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		h.log.Error(r.Context(), "error starting recording", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to start recording")
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// stop handles POST /api/recordings/stop.
func (h *RecordingsHandler) stop(w http.ResponseWriter, r *http.Request) {
	rec, err := h.rec.StopRecording()
	if err != nil {
		if errors.Is(err, app.ErrNotRecording) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		h.log.Error(r.Context(), "error stopping recording", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to stop recording")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// get handles GET /api/recordings/{id}.
func (h *RecordingsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	rec, err := h.store.Recordings().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Recording not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get recording")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// delete handles DELETE /api/recordings/{id}.
func (h *RecordingsHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if active, ok := h.rec.Recording(); ok && active.ID == id {
		writeError(w, http.StatusConflict, "Recording in progress")
		return
	}
	if err := h.store.Recordings().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Recording not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete recording")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// replay handles POST /api/recordings/{id}/replay.
func (h *RecordingsHandler) replay(w http.ResponseWriter, r *http.Request, id string) {
	res, err := h.rec.ReplayRecording(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Recording not found")
			return
		}
		h.log.Error(r.Context(), "error replaying recording", logger.String("id", id), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to replay recording")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
