package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/media-discovery/internal/api/dto"
	"github.com/spec-kit/media-discovery/internal/api/envelope"
	"github.com/spec-kit/media-discovery/internal/domain"
	"github.com/spec-kit/media-discovery/internal/service"
)

// FavoritesHandler exposes the caller's favorites.
type FavoritesHandler struct {
	favorites *service.FavoriteService
}

// NewFavoritesHandler constructs handler.
func NewFavoritesHandler(favorites *service.FavoriteService) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

// List handles GET /user/favorites.
func (h *FavoritesHandler) List(c *fiber.Ctx, identity domain.Identity) error {
	favorites, err := h.favorites.ListOwned(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return envelope.OK(c, dto.NewFavoriteResponses(favorites))
}

// Add handles POST /user/favorites. Re-adding a title answers ok with the
// stored record instead of created.
func (h *FavoritesHandler) Add(c *fiber.Ctx, identity domain.Identity) error {
	var req dto.AddFavoriteRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	favorite, created, err := h.favorites.Add(c.UserContext(), identity, service.FavoriteInput{
		MediaID:     req.MediaID,
		MediaType:   req.MediaType,
		MediaTitle:  req.MediaTitle,
		MediaPoster: req.MediaPoster,
		MediaRate:   *req.MediaRate,
	})
	if err != nil {
		return err
	}
	if created {
		return envelope.Created(c, dto.NewFavoriteResponse(favorite))
	}
	return envelope.OK(c, dto.NewFavoriteResponse(favorite))
}

// Remove handles DELETE /user/favorites/:favoriteId.
func (h *FavoritesHandler) Remove(c *fiber.Ctx, identity domain.Identity) error {
	if err := h.favorites.Delete(c.UserContext(), identity, c.Params("favoriteId")); err != nil {
		return err
	}
	return envelope.OK(c, nil)
}
