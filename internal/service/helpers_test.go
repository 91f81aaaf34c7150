package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/media-discovery/internal/auth"
	"github.com/spec-kit/media-discovery/internal/config"
	"github.com/spec-kit/media-discovery/internal/domain"
	"github.com/spec-kit/media-discovery/internal/events"
	"github.com/spec-kit/media-discovery/internal/repository/memory"
)

type recordedEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordedEvents) handler(_ context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordedEvents) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, event := range r.events {
		out = append(out, event.Type)
	}
	return out
}

type fixture struct {
	users     *memory.Users
	reviews   *memory.Reviews
	favorites *memory.Favorites
	tokens    *auth.TokenManager
	recorded  *recordedEvents

	userService     *UserService
	reviewService   *ReviewService
	favoriteService *FavoriteService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := memory.NewUsers()
	reviews := memory.NewReviews(users)
	favorites := memory.NewFavorites()
	tokens := auth.NewTokenManager("service-test-secret", time.Hour)

	dispatcher := events.NewSyncDispatcher()
	recorded := &recordedEvents{}
	for _, eventType := range []events.EventType{
		events.EventUserSignedUp,
		events.EventPasswordUpdated,
		events.EventReviewCreated,
		events.EventReviewDeleted,
		events.EventFavoriteAdded,
		events.EventFavoriteRemoved,
	} {
		dispatcher.Subscribe(eventType, recorded.handler)
	}

	return &fixture{
		users:     users,
		reviews:   reviews,
		favorites: favorites,
		tokens:    tokens,
		recorded:  recorded,
		userService: NewUserService(config.AuthConfig{BcryptCost: bcrypt.MinCost}, UserDependencies{
			UserRepo:   users,
			Tokens:     tokens,
			Dispatcher: dispatcher,
		}),
		reviewService:   NewReviewService(reviews, dispatcher),
		favoriteService: NewFavoriteService(favorites, dispatcher),
	}
}

func (f *fixture) signup(t *testing.T, username, displayName string) domain.Identity {
	t.Helper()
	result, err := f.userService.Signup(context.Background(), SignupInput{
		Username:    username,
		Password:    "secret-password",
		DisplayName: displayName,
	})
	if err != nil {
		t.Fatalf("signup %s: %v", username, err)
	}
	return domain.Identity{ID: result.User.ID}
}

type stubCatalog struct {
	detail json.RawMessage
	err    error
}

func (s *stubCatalog) List(context.Context, string, string, int) (json.RawMessage, error) {
	return json.RawMessage(`{"results":[]}`), s.err
}

func (s *stubCatalog) Genres(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(`{"genres":[]}`), s.err
}

func (s *stubCatalog) Search(context.Context, string, string, int) (json.RawMessage, error) {
	return json.RawMessage(`{"results":[]}`), s.err
}

func (s *stubCatalog) Detail(context.Context, string, string) (json.RawMessage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.detail, nil
}

func (s *stubCatalog) Person(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(`{"id":525}`), s.err
}

func (s *stubCatalog) PersonMedias(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(`{"cast":[],"crew":[]}`), s.err
}
