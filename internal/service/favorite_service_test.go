package service

import (
	"context"
	"testing"

	"github.com/spec-kit/media-discovery/internal/domain"
	apperrors "github.com/spec-kit/media-discovery/pkg/util/errorutil"
)

func favoriteInput(mediaID string) FavoriteInput {
	return FavoriteInput{
		MediaID:    mediaID,
		MediaType:  domain.MediaTypeTV,
		MediaTitle: "Severance",
		MediaRate:  8.4,
	}
}

func TestFavoriteAddIsIdempotent(t *testing.T) {
	f := newFixture(t)
	alice := f.signup(t, "alice", "Alice")
	ctx := context.Background()

	first, created, err := f.favoriteService.Add(ctx, alice, favoriteInput("95396"))
	if err != nil || !created {
		t.Fatalf("first add: created=%v err=%v", created, err)
	}
	second, created, err := f.favoriteService.Add(ctx, alice, favoriteInput("95396"))
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if created {
		t.Fatal("second add reported a new favorite")
	}
	if second.ID != first.ID {
		t.Fatalf("expected existing favorite %s, got %s", first.ID, second.ID)
	}

	owned, err := f.favoriteService.ListOwned(ctx, alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(owned) != 1 {
		t.Fatalf("expected one favorite, got %d", len(owned))
	}
}

func TestIsFavoriteScopedToIdentity(t *testing.T) {
	f := newFixture(t)
	alice := f.signup(t, "alice", "Alice")
	bob := f.signup(t, "bob", "Bob")
	ctx := context.Background()

	if _, _, err := f.favoriteService.Add(ctx, alice, favoriteInput("95396")); err != nil {
		t.Fatalf("add: %v", err)
	}

	aliceHas, err := f.favoriteService.IsFavorite(ctx, alice, domain.MediaTypeTV, "95396")
	if err != nil || !aliceHas {
		t.Fatalf("alice: has=%v err=%v", aliceHas, err)
	}
	bobHas, err := f.favoriteService.IsFavorite(ctx, bob, domain.MediaTypeTV, "95396")
	if err != nil || bobHas {
		t.Fatalf("bob: has=%v err=%v", bobHas, err)
	}
}

func TestFavoriteDeleteOwnership(t *testing.T) {
	f := newFixture(t)
	alice := f.signup(t, "alice", "Alice")
	bob := f.signup(t, "bob", "Bob")
	ctx := context.Background()

	favorite, _, err := f.favoriteService.Add(ctx, alice, favoriteInput("95396"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := f.favoriteService.Delete(ctx, bob, favorite.ID); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("expected not found for non-owner, got %v", err)
	}
	if !f.favorites.Exists(favorite.ID) {
		t.Fatal("favorite removed by non-owner")
	}
	if err := f.favoriteService.Delete(ctx, alice, favorite.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := f.favoriteService.Delete(ctx, alice, favorite.ID); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("expected second delete to be not found, got %v", err)
	}
}
