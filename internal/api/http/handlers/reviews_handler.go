package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/media-discovery/internal/api/dto"
	"github.com/spec-kit/media-discovery/internal/api/envelope"
	"github.com/spec-kit/media-discovery/internal/domain"
	"github.com/spec-kit/media-discovery/internal/service"
)

// ReviewsHandler exposes the caller's reviews.
type ReviewsHandler struct {
	reviews *service.ReviewService
}

// NewReviewsHandler constructs handler.
func NewReviewsHandler(reviews *service.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{reviews: reviews}
}

// List handles GET /reviews.
func (h *ReviewsHandler) List(c *fiber.Ctx, identity domain.Identity) error {
	reviews, err := h.reviews.ListOwned(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return envelope.OK(c, dto.NewReviewResponses(reviews))
}

// Create handles POST /reviews.
func (h *ReviewsHandler) Create(c *fiber.Ctx, identity domain.Identity) error {
	var req dto.CreateReviewRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	review, err := h.reviews.Create(c.UserContext(), identity, service.ReviewInput{
		MediaID:     req.MediaID,
		MediaType:   req.MediaType,
		MediaTitle:  req.MediaTitle,
		MediaPoster: req.MediaPoster,
		Content:     req.Content,
	})
	if err != nil {
		return err
	}
	return envelope.Created(c, dto.NewReviewResponse(review))
}

// Remove handles DELETE /reviews/:reviewId.
func (h *ReviewsHandler) Remove(c *fiber.Ctx, identity domain.Identity) error {
	if err := h.reviews.Delete(c.UserContext(), identity, c.Params("reviewId")); err != nil {
		return err
	}
	return envelope.OK(c, nil)
}
