package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/handycalc/internal/config"
	"github.com/ayusman/handycalc/internal/logger"
	"github.com/ayusman/handycalc/internal/store"
)

// SettingsHandler reads and updates runtime settings.
//
//	GET /api/settings
//	PUT /api/settings {"hold_duration_sec": 1.2}
type SettingsHandler struct {
	ctrl  Controller
	store *store.Store
	log   logger.Logger
}

// NewSettingsHandler creates a new SettingsHandler. A nil store keeps
// changes in memory only.
func NewSettingsHandler(ctrl Controller, s *store.Store, log logger.Logger) *SettingsHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &SettingsHandler{ctrl: ctrl, store: s, log: log}
}

type settingsResponse struct {
	HoldDurationSec float64 `json:"hold_duration_sec"`
	MinHoldSec      float64 `json:"min_hold_sec"`
	MaxHoldSec      float64 `json:"max_hold_sec"`
}

type updateSettingsRequest struct {
	HoldDurationSec *float64 `json:"hold_duration_sec"`
}

// ServeHTTP implements the http.Handler interface.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.current())
	case http.MethodPut:
		h.update(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *SettingsHandler) current() settingsResponse {
	return settingsResponse{
		HoldDurationSec: h.ctrl.HoldDuration().Seconds(),
		MinHoldSec:      config.MinHoldDurationSec,
		MaxHoldSec:      config.MaxHoldDurationSec,
	}
}

func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.HoldDurationSec == nil {
		writeError(w, http.StatusBadRequest, "hold_duration_sec is required")
		return
	}

	sec := *req.HoldDurationSec
	if err := config.ValidateHoldDuration(sec); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.store != nil {
		if err := h.store.Settings().SetFloat(store.SettingHoldDuration, sec); err != nil {
			h.log.Error(r.Context(), "error saving setting", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to save settings")
			return
		}
	}
	h.ctrl.SetHoldDuration(config.SecondsToDuration(sec))

	h.log.Info(r.Context(), "hold duration updated", logger.Float64("hold_duration_sec", sec))
	writeJSON(w, http.StatusOK, h.current())
}
