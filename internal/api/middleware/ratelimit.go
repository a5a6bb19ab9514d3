package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/mathduel/mathduel/internal/api/apierr"
)

// RateLimitConfig controls the per-client token bucket
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate allowed per client IP
	RequestsPerSecond float64
	// Burst is the bucket size
	Burst int
	// IdleTTL is how long an idle client's bucket is kept before it is
	// reaped
	IdleTTL time.Duration
}

// DefaultRateLimitConfig returns the production limits
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 10,
		Burst:             20,
		IdleTTL:           5 * time.Minute,
	}
}

// clientLimiter is one client IP's bucket
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP
type RateLimiter struct {
	cfg     RateLimitConfig
	clients map[string]*clientLimiter
	mu      sync.Mutex
	logger  *slog.Logger
}

// NewRateLimiter creates a new RateLimiter and starts its reaper
func NewRateLimiter(cfg RateLimitConfig, logger *slog.Logger) *RateLimiter {
	rl := &RateLimiter{
		cfg:     cfg,
		clients: make(map[string]*clientLimiter),
		logger:  logger.With(slog.String("component", "ratelimit")),
	}
	go rl.reapLoop()
	return rl
}

// Middleware wraps a handler with the rate limit
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			apierr.WriteError(w, apierr.NewRateLimitedError())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	client, ok := rl.clients[ip]
	if !ok {
		client = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(rl.cfg.RequestsPerSecond), rl.cfg.Burst),
		}
		rl.clients[ip] = client
	}
	client.lastSeen = time.Now()

	allowed := client.limiter.Allow()
	if !allowed {
		rl.logger.Warn("request rate limited", slog.String("client_ip", ip))
	}
	return allowed
}

// reapLoop drops buckets for clients idle past the TTL
func (rl *RateLimiter) reapLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-rl.cfg.IdleTTL)
		rl.mu.Lock()
		for ip, client := range rl.clients {
			if client.lastSeen.Before(cutoff) {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// clientIP extracts the client address, without the port
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
