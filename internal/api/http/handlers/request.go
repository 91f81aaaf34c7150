package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/media-discovery/internal/api/dto"
	apperrors "github.com/spec-kit/media-discovery/pkg/util/errorutil"
)

type validatable interface {
	Validate() dto.FieldErrors
}

// bindBody decodes the JSON body into req and runs its validation.
func bindBody(c *fiber.Ctx, req validatable) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if errs := req.Validate(); len(errs) > 0 {
		return apperrors.NewValidationError(errs.First(), errs.Details())
	}
	return nil
}
