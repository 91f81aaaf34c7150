package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/media-discovery/internal/domain"
	"github.com/spec-kit/media-discovery/internal/events"
	"github.com/spec-kit/media-discovery/internal/repository"
	apperrors "github.com/spec-kit/media-discovery/pkg/util/errorutil"
)

// ReviewService manages reviews owned by identities.
type ReviewService struct {
	reviews    repository.ReviewRepository
	dispatcher events.Dispatcher
}

// ReviewInput describes a new review.
type ReviewInput struct {
	MediaID     string
	MediaType   domain.MediaType
	MediaTitle  string
	MediaPoster string
	Content     string
}

// NewReviewService constructs the service.
func NewReviewService(reviews repository.ReviewRepository, dispatcher events.Dispatcher) *ReviewService {
	return &ReviewService{reviews: reviews, dispatcher: dispatcher}
}

// Create stores a review owned by identity.
func (s *ReviewService) Create(ctx context.Context, identity domain.Identity, input ReviewInput) (*domain.Review, error) {
	review := &domain.Review{
		OwnerID:     identity.ID,
		MediaID:     input.MediaID,
		MediaType:   input.MediaType,
		MediaTitle:  input.MediaTitle,
		MediaPoster: input.MediaPoster,
		Content:     input.Content,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	publish(ctx, s.dispatcher, events.EventReviewCreated, identity.ID, review.ID,
		events.MediaPayload{MediaID: review.MediaID, MediaType: string(review.MediaType)})
	return review, nil
}

// ListOwned returns the identity's reviews, newest first.
func (s *ReviewService) ListOwned(ctx context.Context, identity domain.Identity) ([]domain.Review, error) {
	reviews, err := s.reviews.ListByOwner(ctx, identity.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return reviews, nil
}

// ListForMedia returns every review of a title with author names.
func (s *ReviewService) ListForMedia(ctx context.Context, mediaType domain.MediaType, mediaID string) ([]domain.MediaReview, error) {
	reviews, err := s.reviews.ListByMedia(ctx, mediaType, mediaID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return reviews, nil
}

// Delete removes a review owned by identity. Reviews that are missing or
// owned by someone else are both reported as not found.
func (s *ReviewService) Delete(ctx context.Context, identity domain.Identity, reviewID string) error {
	if _, err := uuid.Parse(reviewID); err != nil {
		return apperrors.NewNotFound("Review")
	}
	if err := s.reviews.DeleteOwned(ctx, reviewID, identity.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Review")
		}
		return apperrors.NewInternalError(err)
	}
	publish(ctx, s.dispatcher, events.EventReviewDeleted, identity.ID, reviewID, nil)
	return nil
}
