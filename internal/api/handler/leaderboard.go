package handler

import (
	"net/http"
	"strconv"

	"github.com/mathduel/mathduel/internal/api/apierr"
	"github.com/mathduel/mathduel/internal/api/response"
	"github.com/mathduel/mathduel/internal/services/session"
)

// LeaderboardHandler serves the rating leaderboard
type LeaderboardHandler struct {
	sessions *session.Manager
}

// NewLeaderboardHandler creates a new LeaderboardHandler
func NewLeaderboardHandler(sessions *session.Manager) *LeaderboardHandler {
	return &LeaderboardHandler{sessions: sessions}
}

// Get handles GET /leaderboard?size=N
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	size := 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			apierr.WriteError(w, apierr.NewInvalidRequestError("size must be a positive integer"))
			return
		}
		size = parsed
	}

	entries, err := h.sessions.Leaderboard(r.Context(), size)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Leaderboard{Entries: entries})
}
