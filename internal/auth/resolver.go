package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/media-discovery/internal/domain"
)

// IdentityLookup reads the minimal identity for an account id. It must
// return pgx.ErrNoRows when the account does not exist.
type IdentityLookup interface {
	IdentityByID(ctx context.Context, id string) (*domain.Identity, error)
}

// IdentityResolver confirms a verified subject still exists.
type IdentityResolver struct {
	lookup IdentityLookup
}

// NewIdentityResolver constructs a resolver over the system of record.
func NewIdentityResolver(lookup IdentityLookup) *IdentityResolver {
	return &IdentityResolver{lookup: lookup}
}

// Resolve returns the identity handle for subject. Deleted accounts yield
// ErrIdentityNotFound even while their tokens are unexpired.
func (r *IdentityResolver) Resolve(ctx context.Context, subject string) (domain.Identity, error) {
	if _, err := uuid.Parse(subject); err != nil {
		return domain.Identity{}, ErrIdentityNotFound
	}

	identity, err := r.lookup.IdentityByID(ctx, subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Identity{}, ErrIdentityNotFound
		}
		return domain.Identity{}, fmt.Errorf("resolve identity: %w", err)
	}
	return domain.Identity{ID: identity.ID}, nil
}
