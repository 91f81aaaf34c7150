package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/media-discovery/internal/events"
)

func TestActivityServiceLogsEvents(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	dispatcher := events.NewSyncDispatcher()
	NewActivityService(dispatcher, zap.New(core)).RegisterHandlers()

	publish(context.Background(), dispatcher, events.EventFavoriteAdded, "actor-1", "favorite-1",
		events.MediaPayload{MediaID: "95396", MediaType: "tv"})
	publish(context.Background(), dispatcher, events.EventPasswordUpdated, "actor-1", "actor-1", nil)

	entries := logs.FilterMessage("activity").All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 activity entries, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["event_type"] != string(events.EventFavoriteAdded) || fields["media_id"] != "95396" {
		t.Fatalf("unexpected fields %v", fields)
	}
	if _, ok := entries[1].ContextMap()["media_id"]; ok {
		t.Fatal("media fields logged for an event without media")
	}
}
