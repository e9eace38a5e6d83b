package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/avandermeer/wellspring/internal/dashboard"
)

type DashboardHandler struct {
	composer *dashboard.Composer
	logger   *slog.Logger
}

func NewDashboardHandler(c *dashboard.Composer, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{composer: c, logger: logger}
}

// Get returns the composed wellness dashboard for the owner.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, err := ownerParam(r)
	if err != nil || ownerID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid owner")
		return
	}

	d, err := h.composer.Dashboard(ownerID, time.Now().UTC())
	if err != nil {
		h.logger.Error("compose dashboard", "owner", ownerID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compose dashboard")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// RegenerateProfile forces a circadian profile rebuild, bypassing the
// seven-day reuse window.
func (h *DashboardHandler) RegenerateProfile(w http.ResponseWriter, r *http.Request) {
	ownerID, err := ownerParam(r)
	if err != nil || ownerID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid owner")
		return
	}

	profile, err := h.composer.CircadianProfile(ownerID, time.Now().UTC(), true)
	if err != nil {
		h.logger.Error("regenerate profile", "owner", ownerID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to regenerate profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
