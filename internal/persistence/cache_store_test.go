package persistence

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/media-discovery/internal/config"
)

func TestOpenCacheStoreToleratesUnreachableRedis(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	store := OpenCacheStore(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1"}, zap.New(core))
	t.Cleanup(func() { _ = store.Close() })

	if store.Cmdable() == nil {
		t.Fatal("expected a usable client even when redis is down")
	}
	if err := store.Ping(context.Background()); err == nil {
		t.Fatal("expected ping to fail against a closed port")
	}
	if logs.FilterMessage("catalog cache unavailable; serving catalog from upstream").Len() != 1 {
		t.Fatalf("expected unavailable warning, got %v", logs.All())
	}
}

func TestNilCacheStore(t *testing.T) {
	var store *CacheStore
	if err := store.Ping(context.Background()); err == nil {
		t.Fatal("expected error from unconfigured store")
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close on nil store: %v", err)
	}
}
