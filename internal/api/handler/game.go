package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mathduel/mathduel/internal/api/apierr"
	"github.com/mathduel/mathduel/internal/api/response"
	"github.com/mathduel/mathduel/internal/model"
	"github.com/mathduel/mathduel/internal/services/session"
)

// GameHandler serves read-only views of the live game set
type GameHandler struct {
	sessions *session.Manager
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(sessions *session.Manager) *GameHandler {
	return &GameHandler{sessions: sessions}
}

// List handles GET /games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.sessions.List(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	out := make([]response.GameSummary, len(games))
	for i, g := range games {
		out[i] = response.GameSummaryFromModel(g)
	}
	response.JSON(w, http.StatusOK, response.GameList{Games: out})
}

// Get handles GET /games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	game, err := h.sessions.Get(r.Context(), model.GameID(id))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameSummaryFromModel(game))
}
