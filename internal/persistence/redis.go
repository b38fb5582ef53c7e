package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/config"
	"github.com/spec-kit/job-board/internal/repository"
)

// Redis wraps the go-redis client backing the permission cache.
type Redis struct {
	Client    *redis.Client
	reachable bool
}

// NewRedis connects to Redis. An unreachable server is logged, not fatal:
// permission lookups fall through to Postgres.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	r := &Redis{Client: client}
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("unable to reach redis; permission cache disabled", zap.Error(err))
	} else {
		r.reachable = true
		logger.Info("connected to redis")
	}
	return r
}

// PermissionCache returns a redis-backed cache, or a no-op one when redis was unreachable at boot.
func (r *Redis) PermissionCache(ttl time.Duration) repository.PermissionCache {
	if r == nil || r.Client == nil || !r.reachable {
		return repository.NewNopPermissionCache()
	}
	return repository.NewRedisPermissionCache(r.Client, ttl)
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}
