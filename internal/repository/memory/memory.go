// Package memory holds map-backed repositories with the same contract as
// the Postgres ones, including pgx.ErrNoRows for missing rows.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/media-discovery/internal/domain"
	"github.com/spec-kit/media-discovery/internal/repository"
)

var (
	_ repository.UserRepository     = (*Users)(nil)
	_ repository.ReviewRepository   = (*Reviews)(nil)
	_ repository.FavoriteRepository = (*Favorites)(nil)
)

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
}

// Users stores accounts.
type Users struct {
	mu   sync.RWMutex
	byID map[string]domain.User
	// Err, when set, is returned by every call.
	Err error
}

// NewUsers returns an empty store.
func NewUsers() *Users {
	return &Users{byID: map[string]domain.User{}}
}

func (u *Users) Create(_ context.Context, user *domain.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return u.Err
	}
	for _, existing := range u.byID {
		if existing.Username == user.Username {
			return uniqueViolation()
		}
	}
	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt, user.UpdatedAt = now, now
	u.byID[user.ID] = *user
	return nil
}

func (u *Users) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return u.Err
	}
	user, ok := u.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now().UTC()
	u.byID[id] = user
	return nil
}

func (u *Users) GetByID(_ context.Context, id string) (*domain.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.Err != nil {
		return nil, u.Err
	}
	user, ok := u.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (u *Users) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.Err != nil {
		return nil, u.Err
	}
	for _, user := range u.byID {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (u *Users) IdentityByID(ctx context.Context, id string) (*domain.Identity, error) {
	user, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.Identity{ID: user.ID}, nil
}

// Delete drops an account, as an operator would out of band.
func (u *Users) Delete(id string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.byID, id)
}

func (u *Users) displayName(id string) string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.byID[id].DisplayName
}

// Reviews stores reviews. Author names are read from users.
type Reviews struct {
	mu    sync.RWMutex
	users *Users
	rows  []domain.Review
	seq   time.Duration
}

// NewReviews returns an empty store joined to users.
func NewReviews(users *Users) *Reviews {
	return &Reviews{users: users}
}

func (r *Reviews) Create(_ context.Context, review *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	now := time.Now().UTC().Add(r.seq)
	review.ID = uuid.NewString()
	review.CreatedAt, review.UpdatedAt = now, now
	r.rows = append(r.rows, *review)
	return nil
}

func (r *Reviews) ListByOwner(_ context.Context, ownerID string) ([]domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Review, 0)
	for _, review := range r.rows {
		if review.OwnerID == ownerID {
			result = append(result, review)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *Reviews) ListByMedia(_ context.Context, mediaType domain.MediaType, mediaID string) ([]domain.MediaReview, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.MediaReview, 0)
	for _, review := range r.rows {
		if review.MediaType != mediaType || review.MediaID != mediaID {
			continue
		}
		name := ""
		if r.users != nil {
			name = r.users.displayName(review.OwnerID)
		}
		result = append(result, domain.MediaReview{Review: review, OwnerDisplayName: name})
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *Reviews) DeleteOwned(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, review := range r.rows {
		if review.ID == id && review.OwnerID == ownerID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

// Exists reports whether a review with id is stored.
func (r *Reviews) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, review := range r.rows {
		if review.ID == id {
			return true
		}
	}
	return false
}

// Favorites stores favorites.
type Favorites struct {
	mu   sync.RWMutex
	rows []domain.Favorite
	seq  time.Duration
}

// NewFavorites returns an empty store.
func NewFavorites() *Favorites {
	return &Favorites{}
}

func (f *Favorites) Create(_ context.Context, favorite *domain.Favorite) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.rows {
		if existing.OwnerID == favorite.OwnerID && existing.MediaType == favorite.MediaType && existing.MediaID == favorite.MediaID {
			return uniqueViolation()
		}
	}
	f.seq++
	now := time.Now().UTC().Add(f.seq)
	favorite.ID = uuid.NewString()
	favorite.CreatedAt, favorite.UpdatedAt = now, now
	f.rows = append(f.rows, *favorite)
	return nil
}

func (f *Favorites) ListByOwner(_ context.Context, ownerID string) ([]domain.Favorite, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]domain.Favorite, 0)
	for _, favorite := range f.rows {
		if favorite.OwnerID == ownerID {
			result = append(result, favorite)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (f *Favorites) GetByOwnerAndMedia(_ context.Context, ownerID string, mediaType domain.MediaType, mediaID string) (*domain.Favorite, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, favorite := range f.rows {
		if favorite.OwnerID == ownerID && favorite.MediaType == mediaType && favorite.MediaID == mediaID {
			return &favorite, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *Favorites) DeleteOwned(_ context.Context, id, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, favorite := range f.rows {
		if favorite.ID == id && favorite.OwnerID == ownerID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

// Exists reports whether a favorite with id is stored.
func (f *Favorites) Exists(id string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, favorite := range f.rows {
		if favorite.ID == id {
			return true
		}
	}
	return false
}
