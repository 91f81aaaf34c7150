package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/spec-kit/media-discovery/internal/catalog"
	"github.com/spec-kit/media-discovery/internal/domain"
	apperrors "github.com/spec-kit/media-discovery/pkg/util/errorutil"
)

// Catalog is the upstream content provider.
type Catalog interface {
	List(ctx context.Context, mediaType, category string, page int) (json.RawMessage, error)
	Genres(ctx context.Context, mediaType string) (json.RawMessage, error)
	Search(ctx context.Context, mediaType, query string, page int) (json.RawMessage, error)
	Detail(ctx context.Context, mediaType, mediaID string) (json.RawMessage, error)
	Person(ctx context.Context, personID string) (json.RawMessage, error)
	PersonMedias(ctx context.Context, personID string) (json.RawMessage, error)
}

// MediaService passes catalog calls through and decorates details with
// local reviews and favorites.
type MediaService struct {
	catalog   Catalog
	reviews   *ReviewService
	favorites *FavoriteService
}

// NewMediaService constructs the service.
func NewMediaService(catalog Catalog, reviews *ReviewService, favorites *FavoriteService) *MediaService {
	return &MediaService{catalog: catalog, reviews: reviews, favorites: favorites}
}

// List returns a catalog category page.
func (s *MediaService) List(ctx context.Context, mediaType domain.MediaType, category string, page int) (json.RawMessage, error) {
	body, err := s.catalog.List(ctx, string(mediaType), category, page)
	return body, mapCatalogError(err, "Media list")
}

// Genres returns the genre list.
func (s *MediaService) Genres(ctx context.Context, mediaType domain.MediaType) (json.RawMessage, error) {
	body, err := s.catalog.Genres(ctx, string(mediaType))
	return body, mapCatalogError(err, "Genres")
}

// Search runs a catalog search.
func (s *MediaService) Search(ctx context.Context, mediaType domain.MediaType, query string, page int) (json.RawMessage, error) {
	body, err := s.catalog.Search(ctx, string(mediaType), query, page)
	return body, mapCatalogError(err, "Media")
}

// Person returns a person's profile.
func (s *MediaService) Person(ctx context.Context, personID string) (json.RawMessage, error) {
	body, err := s.catalog.Person(ctx, personID)
	return body, mapCatalogError(err, "Person")
}

// PersonMedias returns the titles a person appears in or worked on.
func (s *MediaService) PersonMedias(ctx context.Context, personID string) (json.RawMessage, error) {
	body, err := s.catalog.PersonMedias(ctx, personID)
	return body, mapCatalogError(err, "Person")
}

// MediaDetail is an upstream title plus local activity on it.
type MediaDetail struct {
	Media      map[string]any
	Reviews    []domain.MediaReview
	IsFavorite *bool
}

// Detail loads a title with its reviews and, for an identified caller,
// whether it is among their favorites.
func (s *MediaService) Detail(ctx context.Context, identity *domain.Identity, mediaType domain.MediaType, mediaID string) (*MediaDetail, error) {
	body, err := s.catalog.Detail(ctx, string(mediaType), mediaID)
	if err != nil {
		return nil, mapCatalogError(err, "Media")
	}

	detail := &MediaDetail{Media: map[string]any{}}
	if err := json.Unmarshal(body, &detail.Media); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if detail.Media == nil {
		return nil, apperrors.NewInternalError(errEmptyDetail)
	}

	if identity != nil {
		isFavorite, err := s.favorites.IsFavorite(ctx, *identity, mediaType, mediaID)
		if err != nil {
			return nil, err
		}
		detail.IsFavorite = &isFavorite
	}

	detail.Reviews, err = s.reviews.ListForMedia(ctx, mediaType, mediaID)
	if err != nil {
		return nil, err
	}
	return detail, nil
}

var errEmptyDetail = errors.New("catalog returned an empty detail")

func mapCatalogError(err error, resource string) error {
	if err == nil {
		return nil
	}
	var upstream *catalog.UpstreamError
	if errors.As(err, &upstream) {
		switch {
		case upstream.StatusCode == http.StatusNotFound:
			return apperrors.NewNotFound(resource)
		case upstream.StatusCode >= 400 && upstream.StatusCode < 500:
			return apperrors.NewBadRequest("catalog rejected the request")
		}
	}
	return apperrors.NewInternalError(err)
}
