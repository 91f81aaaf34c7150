package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/media-discovery/internal/domain"
)

// ReviewRepository persists reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Review, error)
	ListByMedia(ctx context.Context, mediaType domain.MediaType, mediaID string) ([]domain.MediaReview, error)
	// DeleteOwned removes the review only when ownerID matches and returns
	// pgx.ErrNoRows otherwise.
	DeleteOwned(ctx context.Context, id, ownerID string) error
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository constructs repository.
func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	const query = `
        INSERT INTO reviews (owner_id, media_id, media_type, media_title, media_poster, content)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		review.OwnerID,
		review.MediaID,
		review.MediaType,
		review.MediaTitle,
		review.MediaPoster,
		review.Content,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
}

func (r *reviewRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Review, error) {
	const query = `
        SELECT id, owner_id, media_id, media_type, media_title, media_poster, content, created_at, updated_at
        FROM reviews WHERE owner_id=$1
        ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Review, 0)
	for rows.Next() {
		var review domain.Review
		if err := scanReview(rows, &review); err != nil {
			return nil, err
		}
		result = append(result, review)
	}
	return result, rows.Err()
}

func (r *reviewRepository) ListByMedia(ctx context.Context, mediaType domain.MediaType, mediaID string) ([]domain.MediaReview, error) {
	const query = `
        SELECT r.id, r.owner_id, r.media_id, r.media_type, r.media_title, r.media_poster, r.content,
               r.created_at, r.updated_at, u.display_name
        FROM reviews r JOIN users u ON u.id = r.owner_id
        WHERE r.media_type=$1 AND r.media_id=$2
        ORDER BY r.created_at DESC`
	rows, err := r.pool.Query(ctx, query, mediaType, mediaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.MediaReview, 0)
	for rows.Next() {
		var review domain.MediaReview
		if err := rows.Scan(
			&review.ID,
			&review.OwnerID,
			&review.MediaID,
			&review.MediaType,
			&review.MediaTitle,
			&review.MediaPoster,
			&review.Content,
			&review.CreatedAt,
			&review.UpdatedAt,
			&review.OwnerDisplayName,
		); err != nil {
			return nil, err
		}
		result = append(result, review)
	}
	return result, rows.Err()
}

func (r *reviewRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	const query = `DELETE FROM reviews WHERE id=$1 AND owner_id=$2`
	cmd, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanReview(rows pgx.Rows, review *domain.Review) error {
	return rows.Scan(
		&review.ID,
		&review.OwnerID,
		&review.MediaID,
		&review.MediaType,
		&review.MediaTitle,
		&review.MediaPoster,
		&review.Content,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
}
