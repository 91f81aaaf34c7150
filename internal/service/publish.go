package service

import (
	"context"
	"time"

	"github.com/spec-kit/media-discovery/internal/events"
)

// publish emits an activity event. Subscriber failures never fail the
// operation that produced the event.
func publish(ctx context.Context, dispatcher events.Dispatcher, eventType events.EventType, actorID, resourceID string, payload any) {
	if dispatcher == nil {
		return
	}
	_ = dispatcher.Publish(ctx, events.Event{
		Type:       eventType,
		ActorID:    actorID,
		ResourceID: resourceID,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	})
}
