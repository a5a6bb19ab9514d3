package ws

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/mathduel/mathduel/internal/model"
)

// GameController is the full inbound surface the gateway drives
type GameController interface {
	HandleConnect(ctx context.Context, displayName string) (*model.Player, error)
	EventSink
}

// Gateway upgrades HTTP requests into duel connections. The handshake is
// the registration: a successful upgrade on GET /ws?name=<displayName>
// creates the player, binds the connection, and replies with a
// PlayerConnected frame.
type Gateway struct {
	hub        *Hub
	controller GameController
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

// NewGateway creates a new Gateway
func NewGateway(hub *Hub, controller GameController, logger *slog.Logger) *Gateway {
	return &Gateway{
		hub:        hub,
		controller: controller,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// The server fronts a public game; origin policy is left
				// to the deployment's proxy
				return true
			},
		},
		logger: logger.With(slog.String("component", "ws")),
	}
}

// ServeHTTP handles the duel channel handshake
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "missing name", http.StatusBadRequest)
		return
	}

	player, err := g.controller.HandleConnect(r.Context(), name)
	if err != nil {
		g.logger.Error("connect failed",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, "registration failed", http.StatusInternalServerError)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response. The player record is
		// orphaned; reap it so it never shows up in matchmaking.
		g.controller.HandleDisconnect(context.Background(), player.ID)
		g.logger.Warn("upgrade failed",
			slog.String("player_id", string(player.ID)),
			slog.String("error", err.Error()),
		)
		return
	}

	client := newClient(g.hub, g.controller, player.ID, conn, g.logger)
	g.hub.register(client)

	go client.writePump()
	go client.readPump()

	g.hub.Notify(player.ID, model.EventPlayerConnected, model.PlayerConnectedPayload{Player: *player})

	g.logger.Info("player connected",
		slog.String("player_id", string(player.ID)),
		slog.String("name", name),
	)
}
