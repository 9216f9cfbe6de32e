package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
	"xyzbank/internal/config"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

// NewRateLimiter picks the Redis fixed-window limiter when a client is
// available and falls back to in-process token buckets otherwise.
func NewRateLimiter(ctx context.Context, cfg config.RateLimitConfig, redisClient *redis.Client, logger *slog.Logger) func(http.Handler) http.Handler {
	if redisClient != nil {
		return NewRedisRateLimiter(cfg, redisClient, logger).Middleware
	}
	return NewLocalRateLimiter(ctx, cfg, logger).Middleware
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalRateLimiter keeps one token bucket per client IP.
type LocalRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	cfg      config.RateLimitConfig
	logger   *slog.Logger
	now      func() time.Time
}

func NewLocalRateLimiter(ctx context.Context, cfg config.RateLimitConfig, logger *slog.Logger) *LocalRateLimiter {
	rl := &LocalRateLimiter{
		visitors: make(map[string]*visitor),
		cfg:      cfg,
		logger:   logger.With("component", "LocalRateLimiter"),
		now:      time.Now,
	}
	if cfg.Enabled {
		go rl.cleanupLoop(ctx)
	}
	return rl
}

func (rl *LocalRateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(rl.cfg.RPS), rl.cfg.Burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = rl.now()
	return v.limiter
}

func (rl *LocalRateLimiter) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(limiterIdleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.evictIdle()
		}
	}
}

func (rl *LocalRateLimiter) evictIdle() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	evicted := 0
	cutoff := rl.now().Add(-limiterIdleTTL)
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
			evicted++
		}
	}
	return evicted
}

func (rl *LocalRateLimiter) Middleware(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.getLimiter(ip).Allow() {
			rl.logger.WarnContext(r.Context(), "Rate limit exceeded", "ip", ip)
			writeRateLimited(w, "Rate limit exceeded", time.Second)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP prefers proxy headers carrying a parseable address and falls
// back to the connection's remote address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(ip) != nil {
			return ip
		}
	}
	if xRealIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); xRealIP != "" && net.ParseIP(xRealIP) != nil {
		return xRealIP
	}
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}
	return r.RemoteAddr
}

func writeRateLimited(w http.ResponseWriter, message string, retryAfter time.Duration) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", fmt.Sprintf("%.0f", retryAfter.Seconds()))
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"message": message,
		},
	})
}
