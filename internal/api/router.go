package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mathduel/mathduel/internal/api/handler"
	"github.com/mathduel/mathduel/internal/api/middleware"
	"github.com/mathduel/mathduel/internal/api/response"
	"github.com/mathduel/mathduel/internal/services/registry"
	"github.com/mathduel/mathduel/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger    *slog.Logger
	Registry  *registry.Service
	Sessions  *session.Manager
	Gateway   http.Handler
	RateLimit middleware.RateLimitConfig
}

// NewRouter creates a new router with the duel channel and the read-only
// REST surface configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.Registry)
	gameHandler := handler.NewGameHandler(cfg.Sessions)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.Sessions)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.Logger)

	// The duel channel. Long-lived, so it sits outside the rate limit;
	// the handshake itself still passes through recovery and logging.
	r.Handle("/ws", recoveryMiddleware(loggingMiddleware(cfg.Gateway))).Methods(http.MethodGet)

	// Read-only REST surface
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	api.Use(rateLimiter.Middleware)

	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", leaderboardHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
