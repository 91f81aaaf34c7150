package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/media-discovery/internal/config"
)

const cacheDialCheck = 2 * time.Second

// CacheStore holds the redis connection behind the catalog response cache.
// An unreachable redis is not fatal: catalog lookups then go upstream and
// readiness reports the cache as down.
type CacheStore struct {
	client *redis.Client
}

// OpenCacheStore creates the client and checks it once.
func OpenCacheStore(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *CacheStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	store := &CacheStore{client: client}

	checkCtx, cancel := context.WithTimeout(ctx, cacheDialCheck)
	defer cancel()
	if err := store.Ping(checkCtx); err != nil {
		logger.Warn("catalog cache unavailable; serving catalog from upstream",
			zap.String("addr", cfg.Addr),
			zap.Error(err))
	} else {
		logger.Info("catalog cache ready", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	}
	return store
}

// Cmdable exposes the commands the catalog cache needs.
func (s *CacheStore) Cmdable() redis.Cmdable {
	if s == nil {
		return nil
	}
	return s.client
}

// Ping reports cache readiness.
func (s *CacheStore) Ping(ctx context.Context) error {
	if s == nil || s.client == nil {
		return errors.New("catalog cache not configured")
	}
	return s.client.Ping(ctx).Err()
}

func (s *CacheStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}
