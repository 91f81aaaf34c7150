package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/media-discovery/internal/domain"
	"github.com/spec-kit/media-discovery/internal/events"
	apperrors "github.com/spec-kit/media-discovery/pkg/util/errorutil"
)

func TestSignupIssuesTokenForNewAccount(t *testing.T) {
	f := newFixture(t)
	result, err := f.userService.Signup(context.Background(), SignupInput{
		Username:    "alice",
		Password:    "secret-password",
		DisplayName: "Alice",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if result.User.PasswordHash == "secret-password" {
		t.Fatal("password stored in clear text")
	}
	subject, err := f.tokens.Verify("Bearer " + result.Token.Value)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if subject != result.User.ID {
		t.Fatalf("expected subject %s, got %s", result.User.ID, subject)
	}
	if got := f.recorded.types(); len(got) != 1 || got[0] != events.EventUserSignedUp {
		t.Fatalf("unexpected events %v", got)
	}
}

func TestSignupRejectsTakenUsername(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "alice", "Alice")

	_, err := f.userService.Signup(context.Background(), SignupInput{Username: "alice", Password: "another-password", DisplayName: "A"})
	if !apperrors.IsKind(err, apperrors.KindBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
	if msg := apperrors.ToDomainError(err).Message; msg != "username already used" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestSignin(t *testing.T) {
	f := newFixture(t)
	identity := f.signup(t, "alice", "Alice")
	ctx := context.Background()

	result, err := f.userService.Signin(ctx, "alice", "secret-password")
	if err != nil {
		t.Fatalf("signin: %v", err)
	}
	if result.User.ID != identity.ID || result.Token.Subject != identity.ID {
		t.Fatalf("signin returned wrong account %+v", result)
	}

	cases := []struct {
		username string
		password string
		message  string
	}{
		{"bob", "secret-password", "User not exist"},
		{"alice", "wrong-password", "Wrong password"},
	}
	for _, tc := range cases {
		_, err := f.userService.Signin(ctx, tc.username, tc.password)
		if !apperrors.IsKind(err, apperrors.KindBadRequest) || apperrors.ToDomainError(err).Message != tc.message {
			t.Fatalf("signin(%s): expected %q, got %v", tc.username, tc.message, err)
		}
	}
}

func TestUpdatePassword(t *testing.T) {
	f := newFixture(t)
	identity := f.signup(t, "alice", "Alice")
	ctx := context.Background()

	err := f.userService.UpdatePassword(ctx, identity, "wrong-password", "new-password")
	if !apperrors.IsKind(err, apperrors.KindBadRequest) {
		t.Fatalf("expected wrong password to be rejected, got %v", err)
	}

	if err := f.userService.UpdatePassword(ctx, identity, "secret-password", "new-password"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	if _, err := f.userService.Signin(ctx, "alice", "secret-password"); err == nil {
		t.Fatal("old password still accepted")
	}
	if _, err := f.userService.Signin(ctx, "alice", "new-password"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestUpdatePasswordForDeletedAccount(t *testing.T) {
	f := newFixture(t)
	identity := f.signup(t, "alice", "Alice")
	f.users.Delete(identity.ID)

	err := f.userService.UpdatePassword(context.Background(), identity, "secret-password", "new-password")
	if !apperrors.IsKind(err, apperrors.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestInfo(t *testing.T) {
	f := newFixture(t)
	identity := f.signup(t, "alice", "Alice")

	user, err := f.userService.Info(context.Background(), identity)
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if user.Username != "alice" || user.DisplayName != "Alice" {
		t.Fatalf("unexpected user %+v", user)
	}

	_, err = f.userService.Info(context.Background(), domain.Identity{ID: "00000000-0000-0000-0000-000000000000"})
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSignupStoreFailureIsInternal(t *testing.T) {
	f := newFixture(t)
	f.users.Err = errors.New("connection refused")

	_, err := f.userService.Signup(context.Background(), SignupInput{Username: "alice", Password: "secret-password", DisplayName: "A"})
	if !apperrors.IsKind(err, apperrors.KindInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}
