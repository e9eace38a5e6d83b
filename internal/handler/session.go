package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/avandermeer/wellspring/internal/dashboard"
	"github.com/avandermeer/wellspring/internal/model"
	"github.com/avandermeer/wellspring/internal/store"
)

type SessionHandler struct {
	composer *dashboard.Composer
	sessions *store.SessionStore
	logger   *slog.Logger
}

func NewSessionHandler(c *dashboard.Composer, ss *store.SessionStore, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{composer: c, sessions: ss, logger: logger}
}

type createSessionRequest struct {
	OwnerID int64 `json:"owner_id"`
}

// Create opens a new advice session.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.OwnerID <= 0 {
		writeError(w, http.StatusBadRequest, "owner_id is required")
		return
	}

	session, err := h.sessions.Create(req.OwnerID)
	if err != nil {
		h.logger.Error("create session", "owner", req.OwnerID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

type responseRequest struct {
	OwnerID     int64  `json:"owner_id"`
	Action      string `json:"action"`
	Rating      *int   `json:"rating"`
	CompletedAt string `json:"completed_at"`
}

// Respond records the user's reaction to a session. Responses are
// first-write-wins: replays and conflicting follow-ups return the stored
// response unchanged.
func (h *SessionHandler) Respond(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	var req responseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.OwnerID <= 0 {
		writeError(w, http.StatusBadRequest, "owner_id is required")
		return
	}

	switch req.Action {
	case model.ActionCompleted, model.ActionDismissed, model.ActionSnoozed:
	default:
		writeError(w, http.StatusBadRequest, "action must be completed, dismissed, or snoozed")
		return
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		writeError(w, http.StatusBadRequest, "rating must be 1-5")
		return
	}

	resp := model.SessionResponse{
		Action:      req.Action,
		RespondedAt: time.Now().UTC(),
		Rating:      req.Rating,
	}
	if req.CompletedAt != "" {
		t, err := time.Parse(time.RFC3339, req.CompletedAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "completed_at must be RFC 3339")
			return
		}
		resp.CompletedAt = &t
	}

	session, err := h.composer.RecordResponse(req.OwnerID, sessionID, resp)
	if err != nil {
		h.logger.Error("record response", "session", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to record response")
		return
	}
	if session == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, session)
}
