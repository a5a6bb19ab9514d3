package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mathduel/mathduel/internal/api"
	"github.com/mathduel/mathduel/internal/api/middleware"
	"github.com/mathduel/mathduel/internal/factory"
	"github.com/mathduel/mathduel/internal/services/orchestrator"
	redisstorage "github.com/mathduel/mathduel/internal/storage/redis"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:             logger,
		StorageType:        os.Getenv("STORAGE_TYPE"),
		OrchestratorConfig: orchestratorConfigFromEnv(logger),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create router: duel channel plus the read-only REST surface
	router := api.NewRouter(api.RouterConfig{
		Logger:    logger,
		Registry:  app.Registry,
		Sessions:  app.Sessions,
		Gateway:   app.Gateway,
		RateLimit: middleware.DefaultRateLimitConfig(),
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		parsed, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("port", port))
			os.Exit(1)
		}
		serverConfig.Port = parsed
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		app.Hub.Close()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// orchestratorConfigFromEnv reads the phase timings, falling back to the
// defaults for anything unset or malformed
func orchestratorConfigFromEnv(logger *slog.Logger) orchestrator.Config {
	cfg := orchestrator.DefaultConfig()

	if raw := os.Getenv("GAME_START_DELAY"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.StartDelay = d
		} else {
			logger.Warn("invalid GAME_START_DELAY, using default", slog.String("value", raw))
		}
	}
	if raw := os.Getenv("GAME_LENGTH"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.PlayDuration = d
		} else {
			logger.Warn("invalid GAME_LENGTH, using default", slog.String("value", raw))
		}
	}
	if raw := os.Getenv("LEADERBOARD_SIZE"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.LeaderboardSize = n
		} else {
			logger.Warn("invalid LEADERBOARD_SIZE, using default", slog.String("value", raw))
		}
	}
	return cfg
}
