package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
	"xyzbank/internal/config"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter counts requests per client IP in one-second windows
// shared by every instance pointed at the same Redis.
type RedisRateLimiter struct {
	redisClient *redis.Client
	cfg         config.RateLimitConfig
	logger      *slog.Logger
	window      time.Duration
}

func NewRedisRateLimiter(cfg config.RateLimitConfig, redisClient *redis.Client, logger *slog.Logger) *RedisRateLimiter {
	logger = logger.With("component", "RedisRateLimiter")

	if !cfg.Enabled {
		logger.Info("Rate limiting is disabled via configuration.")
	} else if redisClient == nil {
		logger.Warn("Rate limiting enabled but no Redis client provided; disabling.")
		cfg.Enabled = false
	} else {
		logger.Info("Rate limiter configured", "rps", cfg.RPS, "window", time.Second)
	}

	return &RedisRateLimiter{
		redisClient: redisClient,
		cfg:         cfg,
		logger:      logger,
		window:      time.Second,
	}
}

func (rl *RedisRateLimiter) IsEnabled() bool {
	return rl.cfg.Enabled && rl.redisClient != nil
}

// limit is the number of requests allowed per window; burst widens it.
func (rl *RedisRateLimiter) limit() int64 {
	return int64(rl.cfg.RPS*rl.window.Seconds()) + int64(rl.cfg.Burst)
}

// Middleware fails open: a Redis outage never blocks traffic.
func (rl *RedisRateLimiter) Middleware(next http.Handler) http.Handler {
	if !rl.IsEnabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ip := clientIP(r)
		key := fmt.Sprintf("xyzbank:ratelimit:%s", ip)

		pipe := rl.redisClient.TxPipeline()
		incrCmd := pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, rl.window)
		if _, err := pipe.Exec(ctx); err != nil {
			rl.logger.ErrorContext(ctx, "Redis pipeline failed during rate limiting check", "error", err, "ip", ip)
			next.ServeHTTP(w, r)
			return
		}

		if count := incrCmd.Val(); count > rl.limit() {
			rl.logger.WarnContext(ctx, "Rate limit exceeded", "ip", ip, "count", count, "limit", rl.limit())
			writeRateLimited(w, fmt.Sprintf("Rate limit exceeded. Limit is %d requests per %v.", rl.limit(), rl.window), rl.window)
			return
		}

		next.ServeHTTP(w, r)
	})
}
