package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/media-discovery/internal/events"
)

// ActivityService writes an audit line for every owned-record change.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger) *ActivityService {
	return &ActivityService{dispatcher: dispatcher, logger: logger.Named("activity")}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventUserSignedUp,
		events.EventPasswordUpdated,
		events.EventReviewCreated,
		events.EventReviewDeleted,
		events.EventFavoriteAdded,
		events.EventFavoriteRemoved,
	} {
		a.dispatcher.Subscribe(eventType, a.record)
	}
}

func (a *ActivityService) record(_ context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_type", string(event.Type)),
		zap.String("actor_id", event.ActorID),
		zap.String("resource_id", event.ResourceID),
		zap.Time("timestamp", event.Timestamp),
	}
	if media, ok := event.Payload.(events.MediaPayload); ok {
		fields = append(fields, zap.String("media_id", media.MediaID), zap.String("media_type", media.MediaType))
	}
	a.logger.Info("activity", fields...)
	return nil
}
