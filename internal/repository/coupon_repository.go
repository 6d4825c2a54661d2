package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shopcore/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const couponColumns = `id, code, discount_type, discount_value, min_order_amount, max_uses, current_uses, is_active, expires_at, created_at`

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

func scanCoupon(row pgx.Row) (*model.Coupon, error) {
	var c model.Coupon
	err := row.Scan(&c.ID, &c.Code, &c.DiscountType, &c.DiscountValue, &c.MinOrderAmount,
		&c.MaxUses, &c.CurrentUses, &c.IsActive, &c.ExpiresAt, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByCode retrieves a coupon by its code, case-insensitively.
func (r *couponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE UPPER(code) = UPPER($1)`

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

// Redeem increments a coupon's use counter within tx, guarded against
// exceeding max_uses. The guard runs on the same row the validator read,
// so concurrent redemptions cannot push current_uses past the cap.
func (r *couponRepository) Redeem(ctx context.Context, tx pgx.Tx, couponID uuid.UUID) (bool, error) {
	query := `
		UPDATE coupons
		SET current_uses = current_uses + 1
		WHERE id = $1 AND (max_uses = 0 OR current_uses < max_uses)
		RETURNING id
	`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query, couponID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn().Str("coupon_id", couponID.String()).Msg("coupon usage limit reached")
			return false, nil
		}
		r.logger.Error().Err(err).Str("coupon_id", couponID.String()).Msg("failed to redeem coupon")
		return false, fmt.Errorf("failed to redeem coupon: %w", err)
	}

	r.logger.Debug().Str("coupon_id", couponID.String()).Msg("coupon redeemed")
	return true, nil
}

// Create inserts a new coupon. Codes are stored upper-case.
func (r *couponRepository) Create(ctx context.Context, coupon *model.Coupon) error {
	coupon.Code = strings.ToUpper(coupon.Code)

	query := `
		INSERT INTO coupons (id, code, discount_type, discount_value, min_order_amount, max_uses, current_uses, is_active, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		coupon.ID, coupon.Code, coupon.DiscountType, coupon.DiscountValue,
		coupon.MinOrderAmount, coupon.MaxUses, coupon.CurrentUses,
		coupon.IsActive, coupon.ExpiresAt, coupon.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.NewDomainError(model.ErrCodeDuplicateCode, "A coupon with this code already exists")
		}
		r.logger.Error().Err(err).Str("code", coupon.Code).Msg("failed to create coupon")
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	r.logger.Info().Str("code", coupon.Code).Msg("coupon created")
	return nil
}

// GetByID retrieves a coupon by its ID.
func (r *couponRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	c, err := scanCoupon(r.pool.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}
	return c, nil
}

// List retrieves all coupons, newest first.
func (r *couponRepository) List(ctx context.Context) ([]model.Coupon, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+couponColumns+` FROM coupons ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query coupons")
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	var coupons []model.Coupon
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan coupon row")
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating coupons: %w", err)
	}

	return coupons, nil
}

// Update applies a partial update and returns the updated coupon.
func (r *couponRepository) Update(ctx context.Context, id uuid.UUID, patch *model.CouponUpdate) (*model.Coupon, error) {
	query := `
		UPDATE coupons
		SET discount_value   = COALESCE($1, discount_value),
		    min_order_amount = COALESCE($2, min_order_amount),
		    max_uses         = COALESCE($3, max_uses),
		    is_active        = COALESCE($4, is_active),
		    expires_at       = COALESCE($5, expires_at)
		WHERE id = $6
		RETURNING ` + couponColumns

	c, err := scanCoupon(r.pool.QueryRow(ctx, query,
		patch.DiscountValue, patch.MinOrderAmount, patch.MaxUses, patch.IsActive, patch.ExpiresAt, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to update coupon")
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}

	r.logger.Info().Str("coupon_id", id.String()).Msg("coupon updated")
	return c, nil
}

// Delete removes a coupon.
func (r *couponRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to delete coupon")
		return false, fmt.Errorf("failed to delete coupon: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
