package repository

import (
	"context"
	"errors"
	"fmt"

	"shopkart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// GetItems retrieves all items of the user's cart without creating one.
func (r *cartRepository) GetItems(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	query := `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at
		FROM cart_items ci
		JOIN carts c ON c.id = ci.cart_id
		WHERE c.user_id = $1
		ORDER BY ci.created_at
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	items := []model.CartItem{}
	for rows.Next() {
		var item model.CartItem
		err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart item rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// UpsertItem adds quantity to the user's cart line for the product in a
// single statement. The cart row is created on first use and the
// quantity increment runs inside the database, so concurrent adds for
// the same line converge without lost updates.
func (r *cartRepository) UpsertItem(ctx context.Context, userID uuid.UUID, productID string, quantity int) (*model.CartItem, error) {
	// ON CONFLICT DO UPDATE (rather than DO NOTHING) so the cart id is
	// returned whether or not the cart already existed.
	query := `
		WITH cart AS (
			INSERT INTO carts (id, user_id)
			VALUES ($1, $2)
			ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
			RETURNING id
		)
		INSERT INTO cart_items (id, cart_id, product_id, quantity)
		SELECT $3, cart.id, $4, $5 FROM cart
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING id, cart_id, product_id, quantity, created_at, updated_at
	`

	var item model.CartItem
	err := r.pool.QueryRow(ctx, query, uuid.New(), userID, uuid.New(), productID, quantity).
		Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID.String()).
			Str("product_id", productID).
			Int("quantity", quantity).
			Msg("failed to upsert cart item")
		return nil, fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return &item, nil
}

// IncrementItem increases an existing line's quantity by one.
func (r *cartRepository) IncrementItem(ctx context.Context, userID uuid.UUID, productID string) (*model.CartItem, error) {
	query := `
		UPDATE cart_items ci
		SET quantity = ci.quantity + 1, updated_at = NOW()
		FROM carts c
		WHERE c.id = ci.cart_id AND c.user_id = $1 AND ci.product_id = $2
		RETURNING ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at
	`

	var item model.CartItem
	err := r.pool.QueryRow(ctx, query, userID, productID).
		Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).
			Str("user_id", userID.String()).
			Str("product_id", productID).
			Msg("failed to increment cart item")
		return nil, fmt.Errorf("failed to increment cart item: %w", err)
	}

	return &item, nil
}

// DecrementItem decreases an existing line's quantity by one, deleting
// the line when it would reach zero. The row is locked for the read and
// write so concurrent decrements never go negative.
func (r *cartRepository) DecrementItem(ctx context.Context, userID uuid.UUID, productID string) (*model.CartItem, bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var item model.CartItem
	err = tx.QueryRow(ctx, `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at
		FROM cart_items ci
		JOIN carts c ON c.id = ci.cart_id
		WHERE c.user_id = $1 AND ci.product_id = $2
		FOR UPDATE OF ci
	`, userID, productID).Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		r.logger.Error().Err(err).
			Str("user_id", userID.String()).
			Str("product_id", productID).
			Msg("failed to lock cart item")
		return nil, false, fmt.Errorf("failed to lock cart item: %w", err)
	}

	if item.Quantity <= 1 {
		if _, err = tx.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, item.ID); err != nil {
			r.logger.Error().Err(err).Str("item_id", item.ID.String()).Msg("failed to delete cart item")
			return nil, false, fmt.Errorf("failed to delete cart item: %w", err)
		}
		if err = tx.Commit(ctx); err != nil {
			return nil, false, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil, true, nil
	}

	err = tx.QueryRow(ctx, `
		UPDATE cart_items SET quantity = quantity - 1, updated_at = NOW()
		WHERE id = $1
		RETURNING quantity, updated_at
	`, item.ID).Scan(&item.Quantity, &item.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", item.ID.String()).Msg("failed to decrement cart item")
		return nil, false, fmt.Errorf("failed to decrement cart item: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &item, true, nil
}

// Clear deletes all items of the user's cart.
func (r *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	query := `
		DELETE FROM cart_items ci
		USING carts c
		WHERE c.id = ci.cart_id AND c.user_id = $1
	`

	if _, err := r.pool.Exec(ctx, query, userID); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
