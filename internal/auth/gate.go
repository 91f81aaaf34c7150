package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/media-discovery/internal/domain"
	"github.com/spec-kit/media-discovery/internal/observability"
	apperrors "github.com/spec-kit/media-discovery/pkg/util/errorutil"
)

// Verifier turns a raw Authorization header into a subject.
type Verifier interface {
	Verify(header string) (string, error)
}

// Resolver turns a verified subject into an identity.
type Resolver interface {
	Resolve(ctx context.Context, subject string) (domain.Identity, error)
}

// IdentityHandler is a handler that requires an authenticated caller.
type IdentityHandler func(c *fiber.Ctx, identity domain.Identity) error

// OptionalIdentityHandler receives nil for anonymous callers.
type OptionalIdentityHandler func(c *fiber.Ctx, identity *domain.Identity) error

// Gate verifies the bearer token, resolves the identity and hands it to
// the wrapped handler. Any auth failure ends the request with an
// unauthorized error that the error middleware writes and counts.
type Gate struct {
	verifier Verifier
	resolver Resolver
	logger   *zap.Logger
}

// NewGate constructs the authorization gate.
func NewGate(verifier Verifier, resolver Resolver, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{verifier: verifier, resolver: resolver, logger: logger}
}

// Require wraps next so it only runs for authenticated callers.
func (g *Gate) Require(next IdentityHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := g.authenticate(c)
		if err != nil {
			return g.reject(c, err)
		}
		return next(c, identity)
	}
}

// Optional runs next for every caller, passing the identity when the
// request carries a valid token and nil otherwise.
func (g *Gate) Optional(next OptionalIdentityHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := g.authenticate(c)
		if err != nil {
			if isAuthFailure(err) {
				return next(c, nil)
			}
			return g.reject(c, err)
		}
		return next(c, &identity)
	}
}

func (g *Gate) authenticate(c *fiber.Ctx) (domain.Identity, error) {
	subject, err := g.verifier.Verify(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return domain.Identity{}, err
	}
	identity, err := g.resolver.Resolve(c.UserContext(), subject)
	if err != nil {
		return domain.Identity{}, err
	}
	c.Locals(observability.IdentityLocal, identity.ID)
	return identity, nil
}

func (g *Gate) reject(c *fiber.Ctx, err error) error {
	if isAuthFailure(err) {
		g.logger.Debug("authorization rejected",
			zap.String("path", c.Path()),
			zap.Error(err))
		return apperrors.NewUnauthorized()
	}
	return apperrors.NewInternalError(fmt.Errorf("resolve identity: %w", err))
}

func isAuthFailure(err error) bool {
	return errors.Is(err, ErrMissingHeader) ||
		errors.Is(err, ErrMalformedHeader) ||
		errors.Is(err, ErrInvalidSignature) ||
		errors.Is(err, ErrExpired) ||
		errors.Is(err, ErrIdentityNotFound)
}
