package bootstrap

import (
	"context"
	"log/slog"

	"slotbook/internal/handler/middleware"
	"slotbook/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
		NewRateLimiter,
	),
)

// NewRedisClient returns nil when REDIS_ADDR is unset; callers fall back to
// Postgres markers and unthrottled public routes.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *redis.Client {
	if cfg.Redis.Addr == "" {
		logger.Info("Redis disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rdb.Ping(ctx).Err(); err != nil {
				logger.Warn("Redis ping failed", "addr", cfg.Redis.Addr, "error", err.Error())
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})

	return rdb
}

func NewRateLimiter(cfg config.Config, rdb *redis.Client, logger *slog.Logger) *middleware.RateLimiter {
	if rdb == nil {
		return nil
	}
	logger.Info("Rate limiting enabled", "limit", cfg.Redis.RateLimit, "window", cfg.Redis.RateLimitWindow.String())
	return middleware.NewRateLimiter(rdb, cfg.Redis.RateLimit, cfg.Redis.RateLimitWindow)
}
