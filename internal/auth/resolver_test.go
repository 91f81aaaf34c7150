package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/media-discovery/internal/domain"
)

type fakeLookup struct {
	ids   map[string]bool
	err   error
	calls int
}

func (f *fakeLookup) IdentityByID(_ context.Context, id string) (*domain.Identity, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if !f.ids[id] {
		return nil, pgx.ErrNoRows
	}
	return &domain.Identity{ID: id}, nil
}

func TestResolveExistingIdentity(t *testing.T) {
	lookup := &fakeLookup{ids: map[string]bool{testSubject: true}}
	resolver := NewIdentityResolver(lookup)

	first, err := resolver.Resolve(context.Background(), testSubject)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	second, err := resolver.Resolve(context.Background(), testSubject)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if first != second || first.ID != testSubject {
		t.Fatalf("expected stable identity %s, got %+v and %+v", testSubject, first, second)
	}
	if lookup.calls != 2 {
		t.Fatalf("expected each resolve to hit the store, got %d calls", lookup.calls)
	}
}

func TestResolveMissingIdentity(t *testing.T) {
	resolver := NewIdentityResolver(&fakeLookup{ids: map[string]bool{}})
	if _, err := resolver.Resolve(context.Background(), testSubject); !errors.Is(err, ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
}

func TestResolveMalformedSubjectSkipsLookup(t *testing.T) {
	lookup := &fakeLookup{ids: map[string]bool{}}
	resolver := NewIdentityResolver(lookup)
	if _, err := resolver.Resolve(context.Background(), "not-a-uuid"); !errors.Is(err, ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
	if lookup.calls != 0 {
		t.Fatalf("expected no lookup for malformed subject, got %d", lookup.calls)
	}
}

func TestResolveStoreFailure(t *testing.T) {
	storeErr := errors.New("connection refused")
	resolver := NewIdentityResolver(&fakeLookup{err: storeErr})
	_, err := resolver.Resolve(context.Background(), testSubject)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if errors.Is(err, ErrIdentityNotFound) {
		t.Fatal("store failure must not look like a missing identity")
	}
}
