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

// FavoriteService manages favorites owned by identities.
type FavoriteService struct {
	favorites  repository.FavoriteRepository
	dispatcher events.Dispatcher
}

// FavoriteInput describes a title to bookmark.
type FavoriteInput struct {
	MediaID     string
	MediaType   domain.MediaType
	MediaTitle  string
	MediaPoster string
	MediaRate   float64
}

// NewFavoriteService constructs the service.
func NewFavoriteService(favorites repository.FavoriteRepository, dispatcher events.Dispatcher) *FavoriteService {
	return &FavoriteService{favorites: favorites, dispatcher: dispatcher}
}

// Add bookmarks a title. When the identity already has it the existing
// record is returned and created is false.
func (s *FavoriteService) Add(ctx context.Context, identity domain.Identity, input FavoriteInput) (favorite *domain.Favorite, created bool, err error) {
	existing, err := s.favorites.GetByOwnerAndMedia(ctx, identity.ID, input.MediaType, input.MediaID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, apperrors.NewInternalError(err)
	}

	favorite = &domain.Favorite{
		OwnerID:     identity.ID,
		MediaID:     input.MediaID,
		MediaType:   input.MediaType,
		MediaTitle:  input.MediaTitle,
		MediaPoster: input.MediaPoster,
		MediaRate:   input.MediaRate,
	}
	if err := s.favorites.Create(ctx, favorite); err != nil {
		if isUniqueViolation(err) {
			existing, getErr := s.favorites.GetByOwnerAndMedia(ctx, identity.ID, input.MediaType, input.MediaID)
			if getErr == nil {
				return existing, false, nil
			}
		}
		return nil, false, apperrors.NewInternalError(err)
	}
	publish(ctx, s.dispatcher, events.EventFavoriteAdded, identity.ID, favorite.ID,
		events.MediaPayload{MediaID: favorite.MediaID, MediaType: string(favorite.MediaType)})
	return favorite, true, nil
}

// ListOwned returns the identity's favorites, newest first.
func (s *FavoriteService) ListOwned(ctx context.Context, identity domain.Identity) ([]domain.Favorite, error) {
	favorites, err := s.favorites.ListByOwner(ctx, identity.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return favorites, nil
}

// IsFavorite reports whether identity bookmarked the title.
func (s *FavoriteService) IsFavorite(ctx context.Context, identity domain.Identity, mediaType domain.MediaType, mediaID string) (bool, error) {
	_, err := s.favorites.GetByOwnerAndMedia(ctx, identity.ID, mediaType, mediaID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return false, apperrors.NewInternalError(err)
}

// Delete removes a favorite owned by identity, reporting non-owned ones as
// not found.
func (s *FavoriteService) Delete(ctx context.Context, identity domain.Identity, favoriteID string) error {
	if _, err := uuid.Parse(favoriteID); err != nil {
		return apperrors.NewNotFound("Favorite")
	}
	if err := s.favorites.DeleteOwned(ctx, favoriteID, identity.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Favorite")
		}
		return apperrors.NewInternalError(err)
	}
	publish(ctx, s.dispatcher, events.EventFavoriteRemoved, identity.ID, favoriteID, nil)
	return nil
}
