package domain

import "time"

// Review is a user's written opinion about a title.
type Review struct {
	ID          string
	OwnerID     string
	MediaID     string
	MediaType   MediaType
	MediaTitle  string
	MediaPoster string
	Content     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MediaReview is a review joined with its author's public fields.
type MediaReview struct {
	Review
	OwnerDisplayName string
}
