package domain

import "time"

// Favorite bookmarks a title for a user.
type Favorite struct {
	ID          string
	OwnerID     string
	MediaID     string
	MediaType   MediaType
	MediaTitle  string
	MediaPoster string
	MediaRate   float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
