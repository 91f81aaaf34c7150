package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/media-discovery/internal/domain"
)

// FavoriteRepository persists favorites.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *domain.Favorite) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Favorite, error)
	GetByOwnerAndMedia(ctx context.Context, ownerID string, mediaType domain.MediaType, mediaID string) (*domain.Favorite, error)
	DeleteOwned(ctx context.Context, id, ownerID string) error
}

type favoriteRepository struct {
	pool *pgxpool.Pool
}

// NewFavoriteRepository constructs repository.
func NewFavoriteRepository(pool *pgxpool.Pool) FavoriteRepository {
	return &favoriteRepository{pool: pool}
}

const favoriteColumns = `id, owner_id, media_id, media_type, media_title, media_poster, media_rate, created_at, updated_at`

func (r *favoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) error {
	const query = `
        INSERT INTO favorites (owner_id, media_id, media_type, media_title, media_poster, media_rate)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		favorite.OwnerID,
		favorite.MediaID,
		favorite.MediaType,
		favorite.MediaTitle,
		favorite.MediaPoster,
		favorite.MediaRate,
	).Scan(&favorite.ID, &favorite.CreatedAt, &favorite.UpdatedAt)
}

func (r *favoriteRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Favorite, error) {
	query := `SELECT ` + favoriteColumns + ` FROM favorites WHERE owner_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Favorite, 0)
	for rows.Next() {
		favorite, err := scanFavorite(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *favorite)
	}
	return result, rows.Err()
}

func (r *favoriteRepository) GetByOwnerAndMedia(ctx context.Context, ownerID string, mediaType domain.MediaType, mediaID string) (*domain.Favorite, error) {
	query := `SELECT ` + favoriteColumns + ` FROM favorites WHERE owner_id=$1 AND media_type=$2 AND media_id=$3`
	return scanFavorite(r.pool.QueryRow(ctx, query, ownerID, mediaType, mediaID))
}

func (r *favoriteRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	const query = `DELETE FROM favorites WHERE id=$1 AND owner_id=$2`
	cmd, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanFavorite(row pgx.Row) (*domain.Favorite, error) {
	var favorite domain.Favorite
	if err := row.Scan(
		&favorite.ID,
		&favorite.OwnerID,
		&favorite.MediaID,
		&favorite.MediaType,
		&favorite.MediaTitle,
		&favorite.MediaPoster,
		&favorite.MediaRate,
		&favorite.CreatedAt,
		&favorite.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &favorite, nil
}
