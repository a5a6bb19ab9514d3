package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mathduel/mathduel/internal/dependencies/clock"
	"github.com/mathduel/mathduel/internal/dependencies/ident"
	"github.com/mathduel/mathduel/internal/dependencies/random"
	"github.com/mathduel/mathduel/internal/services/matchmaking"
	"github.com/mathduel/mathduel/internal/services/orchestrator"
	"github.com/mathduel/mathduel/internal/services/problem"
	"github.com/mathduel/mathduel/internal/services/rating"
	"github.com/mathduel/mathduel/internal/services/registry"
	"github.com/mathduel/mathduel/internal/services/session"
	"github.com/mathduel/mathduel/internal/storage"
	"github.com/mathduel/mathduel/internal/storage/memory"
	redisstorage "github.com/mathduel/mathduel/internal/storage/redis"
	"github.com/mathduel/mathduel/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	Ident  ident.Ident

	// Services
	Registry     *registry.Service
	Matchmaker   *matchmaking.Service
	Rating       *rating.Service
	Problems     *problem.Generator
	Sessions     *session.Manager
	Orchestrator *orchestrator.Orchestrator

	// Transport
	Hub     *ws.Hub
	Gateway *ws.Gateway
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// OrchestratorConfig holds the phase timings (optional)
	// If zero value, defaults to orchestrator.DefaultConfig()
	OrchestratorConfig orchestrator.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	orchCfg := cfg.OrchestratorConfig
	if orchCfg.PlayDuration == 0 {
		orchCfg = orchestrator.DefaultConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), ident.New(), orchCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	id ident.Ident,
	orchCfg orchestrator.Config,
	logger *slog.Logger,
) *App {
	registryService := registry.New(store, id, logger)
	matchmaker := matchmaking.New(logger)
	ratingService := rating.New()
	problems := problem.NewGenerator(rnd, id)
	sessions := session.NewManager(store, registryService, ratingService, problems, clk, id, logger)

	hub := ws.NewHub(logger)
	orch := orchestrator.New(registryService, matchmaker, sessions, hub, orchCfg, logger)
	gateway := ws.NewGateway(hub, orch, logger)

	return &App{
		Storage:      store,
		Clock:        clk,
		Random:       rnd,
		Ident:        id,
		Registry:     registryService,
		Matchmaker:   matchmaker,
		Rating:       ratingService,
		Problems:     problems,
		Sessions:     sessions,
		Orchestrator: orch,
		Hub:          hub,
		Gateway:      gateway,
	}
}
