package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mathduel/mathduel/internal/api/apierr"
	"github.com/mathduel/mathduel/internal/api/response"
	"github.com/mathduel/mathduel/internal/model"
	"github.com/mathduel/mathduel/internal/services/registry"
)

// PlayerHandler serves read-only views of the player registry
type PlayerHandler struct {
	registry *registry.Service
}

// NewPlayerHandler creates a new PlayerHandler
func NewPlayerHandler(registry *registry.Service) *PlayerHandler {
	return &PlayerHandler{registry: registry}
}

// List handles GET /players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.registry.List(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	out := make([]response.Player, len(players))
	for i, p := range players {
		out[i] = response.PlayerFromModel(p)
	}
	response.JSON(w, http.StatusOK, response.PlayerList{Players: out})
}

// Get handles GET /players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	player, err := h.registry.Get(r.Context(), model.PlayerID(id))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}
