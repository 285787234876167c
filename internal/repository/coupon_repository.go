package repository

import (
	"context"
	"errors"
	"fmt"

	"shopkart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// couponRepository implements the CouponRepository interface using PostgreSQL.
type couponRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed coupon repository.
func NewCouponRepository(pool *pgxpool.Pool, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

const couponColumns = `id, code, description, discount_type, discount_value, total_count, used_count, is_active, created_at, updated_at`

func scanCoupon(row pgx.Row) (*model.Coupon, error) {
	var c model.Coupon
	err := row.Scan(&c.ID, &c.Code, &c.Description, &c.DiscountType, &c.DiscountValue,
		&c.TotalCount, &c.UsedCount, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// BeginTx starts a new database transaction.
func (r *couponRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// GetByCode retrieves a coupon by its code.
func (r *couponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1`

	c, err := scanCoupon(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("code", code).Msg("coupon not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	return c, nil
}

// GetByCodeForUpdate retrieves a coupon by code with a row lock.
func (r *couponRepository) GetByCodeForUpdate(ctx context.Context, tx pgx.Tx, code string) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1 FOR UPDATE`

	c, err := scanCoupon(tx.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to lock coupon")
		return nil, fmt.Errorf("failed to lock coupon: %w", err)
	}

	return c, nil
}

// HasUsage reports whether the user has already redeemed the coupon.
func (r *couponRepository) HasUsage(ctx context.Context, userID, couponID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM coupon_usages WHERE user_id = $1 AND coupon_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, couponID).Scan(&exists); err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID.String()).
			Str("coupon_id", couponID.String()).
			Msg("failed to query coupon usage")
		return false, fmt.Errorf("failed to query coupon usage: %w", err)
	}

	return exists, nil
}

// InsertUsage inserts a usage row within the provided transaction.
func (r *couponRepository) InsertUsage(ctx context.Context, tx pgx.Tx, usage *model.CouponUsage) error {
	query := `
		INSERT INTO coupon_usages (id, user_id, coupon_id, used_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := tx.Exec(ctx, query, usage.ID, usage.UserID, usage.CouponID, usage.UsedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrCouponAlreadyUsed
		}
		r.logger.Error().Err(err).
			Str("user_id", usage.UserID.String()).
			Str("coupon_id", usage.CouponID.String()).
			Msg("failed to insert coupon usage")
		return fmt.Errorf("failed to insert coupon usage: %w", err)
	}

	return nil
}

// IncrementUsedCount increments the coupon's used_count within the
// provided transaction.
func (r *couponRepository) IncrementUsedCount(ctx context.Context, tx pgx.Tx, couponID uuid.UUID) error {
	query := `UPDATE coupons SET used_count = used_count + 1, updated_at = NOW() WHERE id = $1`

	if _, err := tx.Exec(ctx, query, couponID); err != nil {
		r.logger.Error().Err(err).Str("coupon_id", couponID.String()).Msg("failed to increment used count")
		return fmt.Errorf("failed to increment used count: %w", err)
	}

	return nil
}

// DeleteUsage deletes the user's usage row within the provided transaction.
func (r *couponRepository) DeleteUsage(ctx context.Context, tx pgx.Tx, userID, couponID uuid.UUID) (bool, error) {
	query := `DELETE FROM coupon_usages WHERE user_id = $1 AND coupon_id = $2`

	tag, err := tx.Exec(ctx, query, userID, couponID)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID.String()).
			Str("coupon_id", couponID.String()).
			Msg("failed to delete coupon usage")
		return false, fmt.Errorf("failed to delete coupon usage: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// DecrementUsedCount decrements the coupon's used_count, floored at zero.
func (r *couponRepository) DecrementUsedCount(ctx context.Context, tx pgx.Tx, couponID uuid.UUID) error {
	query := `UPDATE coupons SET used_count = GREATEST(used_count - 1, 0), updated_at = NOW() WHERE id = $1`

	if _, err := tx.Exec(ctx, query, couponID); err != nil {
		r.logger.Error().Err(err).Str("coupon_id", couponID.String()).Msg("failed to decrement used count")
		return fmt.Errorf("failed to decrement used count: %w", err)
	}

	return nil
}

// LatestUsage retrieves the user's most recent usage with its coupon.
func (r *couponRepository) LatestUsage(ctx context.Context, userID uuid.UUID) (*model.Coupon, *model.CouponUsage, error) {
	query := `
		SELECT c.id, c.code, c.description, c.discount_type, c.discount_value,
			c.total_count, c.used_count, c.is_active, c.created_at, c.updated_at,
			u.id, u.user_id, u.coupon_id, u.used_at
		FROM coupon_usages u
		JOIN coupons c ON c.id = u.coupon_id
		WHERE u.user_id = $1
		ORDER BY u.used_at DESC
		LIMIT 1
	`

	var c model.Coupon
	var u model.CouponUsage
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&c.ID, &c.Code, &c.Description, &c.DiscountType, &c.DiscountValue,
		&c.TotalCount, &c.UsedCount, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		&u.ID, &u.UserID, &u.CouponID, &u.UsedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query latest coupon usage")
		return nil, nil, fmt.Errorf("failed to query latest coupon usage: %w", err)
	}

	return &c, &u, nil
}

// History retrieves the user's usages, most recent first.
func (r *couponRepository) History(ctx context.Context, userID uuid.UUID) ([]model.CouponUsageView, error) {
	query := `
		SELECT c.code, c.discount_type, c.discount_value, u.used_at
		FROM coupon_usages u
		JOIN coupons c ON c.id = u.coupon_id
		WHERE u.user_id = $1
		ORDER BY u.used_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query coupon history")
		return nil, fmt.Errorf("failed to query coupon history: %w", err)
	}
	defer rows.Close()

	history := []model.CouponUsageView{}
	for rows.Next() {
		var v model.CouponUsageView
		if err := rows.Scan(&v.Code, &v.DiscountType, &v.DiscountValue, &v.UsedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan coupon history row")
			return nil, fmt.Errorf("failed to scan coupon history: %w", err)
		}
		history = append(history, v)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating coupon history rows")
		return nil, fmt.Errorf("error iterating coupon history: %w", err)
	}

	return history, nil
}

// ListActive retrieves all active coupons, newest first.
func (r *couponRepository) ListActive(ctx context.Context) ([]model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE is_active ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query active coupons")
		return nil, fmt.Errorf("failed to query active coupons: %w", err)
	}
	defer rows.Close()

	coupons := []model.Coupon{}
	for rows.Next() {
		var c model.Coupon
		err := rows.Scan(&c.ID, &c.Code, &c.Description, &c.DiscountType, &c.DiscountValue,
			&c.TotalCount, &c.UsedCount, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan coupon row")
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating coupon rows")
		return nil, fmt.Errorf("error iterating coupons: %w", err)
	}

	return coupons, nil
}

// Upsert inserts or updates a coupon definition by code. The usage
// counter is preserved on update.
func (r *couponRepository) Upsert(ctx context.Context, coupon *model.Coupon) error {
	query := `
		INSERT INTO coupons (id, code, description, discount_type, discount_value, total_count, used_count, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7)
		ON CONFLICT (code) DO UPDATE SET
			description = EXCLUDED.description,
			discount_type = EXCLUDED.discount_type,
			discount_value = EXCLUDED.discount_value,
			total_count = EXCLUDED.total_count,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
	`

	_, err := r.pool.Exec(ctx, query,
		coupon.ID, coupon.Code, coupon.Description, coupon.DiscountType,
		coupon.DiscountValue, coupon.TotalCount, coupon.IsActive)
	if err != nil {
		r.logger.Error().Err(err).Str("code", coupon.Code).Msg("failed to upsert coupon")
		return fmt.Errorf("failed to upsert coupon: %w", err)
	}

	return nil
}
