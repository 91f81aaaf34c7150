package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/media-discovery/internal/api/dto"
	"github.com/spec-kit/media-discovery/internal/api/envelope"
	"github.com/spec-kit/media-discovery/internal/domain"
	"github.com/spec-kit/media-discovery/internal/service"
	apperrors "github.com/spec-kit/media-discovery/pkg/util/errorutil"
)

// MediaHandler proxies the upstream catalog.
type MediaHandler struct {
	media *service.MediaService
}

// NewMediaHandler constructs handler.
func NewMediaHandler(media *service.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// List handles GET /:mediaType/:mediaCategory.
func (h *MediaHandler) List(c *fiber.Ctx) error {
	mediaType, err := mediaTypeParam(c)
	if err != nil {
		return err
	}
	body, err := h.media.List(c.UserContext(), mediaType, c.Params("mediaCategory"), pageQuery(c))
	if err != nil {
		return err
	}
	return envelope.OK(c, body)
}

// Genres handles GET /:mediaType/genres.
func (h *MediaHandler) Genres(c *fiber.Ctx) error {
	mediaType, err := mediaTypeParam(c)
	if err != nil {
		return err
	}
	body, err := h.media.Genres(c.UserContext(), mediaType)
	if err != nil {
		return err
	}
	return envelope.OK(c, body)
}

// Search handles GET /:mediaType/search. Besides movie and tv it accepts
// people.
func (h *MediaHandler) Search(c *fiber.Ctx) error {
	mediaType := domain.MediaType(c.Params("mediaType"))
	if !mediaType.Searchable() {
		return invalidMediaType()
	}
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		return apperrors.NewValidationError("query is required", map[string]any{"query": "query is required"})
	}
	body, err := h.media.Search(c.UserContext(), mediaType, query, pageQuery(c))
	if err != nil {
		return err
	}
	return envelope.OK(c, body)
}

// Detail handles GET /:mediaType/detail/:mediaId. Identified callers also
// learn whether the title is among their favorites.
func (h *MediaHandler) Detail(c *fiber.Ctx, identity *domain.Identity) error {
	mediaType, err := mediaTypeParam(c)
	if err != nil {
		return err
	}
	detail, err := h.media.Detail(c.UserContext(), identity, mediaType, c.Params("mediaId"))
	if err != nil {
		return err
	}

	data := detail.Media
	data["reviews"] = dto.NewMediaReviewResponses(detail.Reviews)
	if detail.IsFavorite != nil {
		data["isFavorite"] = *detail.IsFavorite
	}
	return envelope.OK(c, data)
}

// Person handles GET /person/:personId.
func (h *MediaHandler) Person(c *fiber.Ctx) error {
	body, err := h.media.Person(c.UserContext(), c.Params("personId"))
	if err != nil {
		return err
	}
	return envelope.OK(c, body)
}

// PersonMedias handles GET /person/:personId/medias.
func (h *MediaHandler) PersonMedias(c *fiber.Ctx) error {
	body, err := h.media.PersonMedias(c.UserContext(), c.Params("personId"))
	if err != nil {
		return err
	}
	return envelope.OK(c, body)
}

func mediaTypeParam(c *fiber.Ctx) (domain.MediaType, error) {
	mediaType := domain.MediaType(c.Params("mediaType"))
	if !mediaType.Valid() {
		return "", invalidMediaType()
	}
	return mediaType, nil
}

func invalidMediaType() error {
	return apperrors.NewValidationError("Invalid mediaType", map[string]any{"mediaType": "Invalid mediaType"})
}

func pageQuery(c *fiber.Ctx) int {
	page := c.QueryInt("page", 1)
	if page < 1 {
		return 1
	}
	return page
}
