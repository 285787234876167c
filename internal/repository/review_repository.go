package repository

import (
	"context"
	"fmt"

	"shopkart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// reviewRepository implements the ReviewRepository interface using PostgreSQL.
type reviewRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

// Create inserts a review and increments the product's review_count in
// the same transaction.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO reviews (id, product_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, review.ID, review.ProductID, review.UserID, review.Rating, review.Comment, review.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrReviewExists
		}
		r.logger.Error().Err(err).
			Str("product_id", review.ProductID).
			Str("user_id", review.UserID.String()).
			Msg("failed to insert review")
		return fmt.Errorf("failed to insert review: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE products SET review_count = review_count + 1 WHERE id = $1
	`, review.ProductID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", review.ProductID).Msg("failed to increment review count")
		return fmt.Errorf("failed to increment review count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit review transaction")
		return fmt.Errorf("failed to commit review transaction: %w", err)
	}

	return nil
}

// Delete removes the user's review and decrements the product's
// review_count in the same transaction.
func (r *reviewRepository) Delete(ctx context.Context, productID string, userID uuid.UUID) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		DELETE FROM reviews WHERE product_id = $1 AND user_id = $2
	`, productID, userID)
	if err != nil {
		r.logger.Error().Err(err).
			Str("product_id", productID).
			Str("user_id", userID.String()).
			Msg("failed to delete review")
		return false, fmt.Errorf("failed to delete review: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return false, nil
	}

	_, err = tx.Exec(ctx, `
		UPDATE products SET review_count = GREATEST(review_count - 1, 0) WHERE id = $1
	`, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to decrement review count")
		return false, fmt.Errorf("failed to decrement review count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit review transaction")
		return false, fmt.Errorf("failed to commit review transaction: %w", err)
	}

	return true, nil
}

// ListByProduct retrieves all reviews of a product, newest first.
func (r *reviewRepository) ListByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	query := `
		SELECT id, product_id, user_id, rating, comment, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan review row")
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating review rows")
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}
