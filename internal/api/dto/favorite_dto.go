package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/media-discovery/internal/domain"
)

// AddFavoriteRequest payload.
type AddFavoriteRequest struct {
	MediaID     string           `json:"mediaId"`
	MediaType   domain.MediaType `json:"mediaType"`
	MediaTitle  string           `json:"mediaTitle"`
	MediaPoster string           `json:"mediaPoster"`
	MediaRate   *float64         `json:"mediaRate"`
}

// Validate checks required fields.
func (r *AddFavoriteRequest) Validate() FieldErrors {
	r.MediaID = strings.TrimSpace(r.MediaID)

	var errs FieldErrors
	if !r.MediaType.Valid() {
		errs.add("mediaType", "Invalid mediaType")
	}
	errs.require("mediaId", r.MediaID)
	errs.require("mediaTitle", r.MediaTitle)
	errs.require("mediaPoster", r.MediaPoster)
	if r.MediaRate == nil {
		errs.add("mediaRate", "mediaRate is required")
	}
	return errs
}

// FavoriteResponse is the wire view of a favorite.
type FavoriteResponse struct {
	ID          string           `json:"id"`
	User        string           `json:"user"`
	MediaID     string           `json:"mediaId"`
	MediaType   domain.MediaType `json:"mediaType"`
	MediaTitle  string           `json:"mediaTitle"`
	MediaPoster string           `json:"mediaPoster"`
	MediaRate   float64          `json:"mediaRate"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// NewFavoriteResponse maps a favorite to its wire view.
func NewFavoriteResponse(favorite *domain.Favorite) FavoriteResponse {
	return FavoriteResponse{
		ID:          favorite.ID,
		User:        favorite.OwnerID,
		MediaID:     favorite.MediaID,
		MediaType:   favorite.MediaType,
		MediaTitle:  favorite.MediaTitle,
		MediaPoster: favorite.MediaPoster,
		MediaRate:   favorite.MediaRate,
		CreatedAt:   favorite.CreatedAt,
	}
}

// NewFavoriteResponses maps a list of favorites.
func NewFavoriteResponses(favorites []domain.Favorite) []FavoriteResponse {
	out := make([]FavoriteResponse, 0, len(favorites))
	for i := range favorites {
		out = append(out, NewFavoriteResponse(&favorites[i]))
	}
	return out
}
