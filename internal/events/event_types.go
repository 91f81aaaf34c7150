package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserSignedUp    EventType = "user_signed_up"
	EventPasswordUpdated EventType = "password_updated"
	EventReviewCreated   EventType = "review_created"
	EventReviewDeleted   EventType = "review_deleted"
	EventFavoriteAdded   EventType = "favorite_added"
	EventFavoriteRemoved EventType = "favorite_removed"
)

// Event records something an identity did to a resource it owns.
type Event struct {
	Type       EventType `json:"type"`
	ActorID    string    `json:"actor_id"`
	ResourceID string    `json:"resource_id"`
	Timestamp  time.Time `json:"timestamp"`
	Payload    any       `json:"payload,omitempty"`
}

// MediaPayload describes the title an event refers to.
type MediaPayload struct {
	MediaID   string `json:"media_id"`
	MediaType string `json:"media_type"`
}
