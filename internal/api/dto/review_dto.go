package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/media-discovery/internal/domain"
)

// CreateReviewRequest payload.
type CreateReviewRequest struct {
	MediaID     string           `json:"mediaId"`
	MediaType   domain.MediaType `json:"mediaType"`
	MediaTitle  string           `json:"mediaTitle"`
	MediaPoster string           `json:"mediaPoster"`
	Content     string           `json:"content"`
}

// Validate checks required fields.
func (r *CreateReviewRequest) Validate() FieldErrors {
	r.MediaID = strings.TrimSpace(r.MediaID)
	r.Content = strings.TrimSpace(r.Content)

	var errs FieldErrors
	errs.require("mediaId", r.MediaID)
	errs.require("content", r.Content)
	if !r.MediaType.Valid() {
		errs.add("mediaType", "Invalid mediaType")
	}
	errs.require("mediaTitle", r.MediaTitle)
	errs.require("mediaPoster", r.MediaPoster)
	return errs
}

// ReviewAuthor identifies who wrote a review.
type ReviewAuthor struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName,omitempty"`
}

// ReviewResponse is the wire view of a review.
type ReviewResponse struct {
	ID          string           `json:"id"`
	User        ReviewAuthor     `json:"user"`
	MediaID     string           `json:"mediaId"`
	MediaType   domain.MediaType `json:"mediaType"`
	MediaTitle  string           `json:"mediaTitle"`
	MediaPoster string           `json:"mediaPoster"`
	Content     string           `json:"content"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// NewReviewResponse maps a review to its wire view.
func NewReviewResponse(review *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:          review.ID,
		User:        ReviewAuthor{ID: review.OwnerID},
		MediaID:     review.MediaID,
		MediaType:   review.MediaType,
		MediaTitle:  review.MediaTitle,
		MediaPoster: review.MediaPoster,
		Content:     review.Content,
		CreatedAt:   review.CreatedAt,
		UpdatedAt:   review.UpdatedAt,
	}
}

// NewReviewResponses maps a list of reviews.
func NewReviewResponses(reviews []domain.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, NewReviewResponse(&reviews[i]))
	}
	return out
}

// NewMediaReviewResponses maps reviews shown on a media page.
func NewMediaReviewResponses(reviews []domain.MediaReview) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp := NewReviewResponse(&reviews[i].Review)
		resp.User.DisplayName = reviews[i].OwnerDisplayName
		out = append(out, resp)
	}
	return out
}
