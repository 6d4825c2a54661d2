// Package coupon implements the stateless coupon rules engine. Validation
// is a read-only check; the use counter only moves as part of a successful
// order placement, so a validated-but-abandoned cart never burns a use.
package coupon

import (
	"context"
	"fmt"
	"time"

	"shopcore/internal/model"
	"shopcore/internal/repository"

	"github.com/rs/zerolog"
)

// Machine-readable reasons for a failed validation, checked in order.
// The first failing rule wins.
const (
	ReasonNotFound          = "COUPON_NOT_FOUND"
	ReasonInactive          = "COUPON_INACTIVE"
	ReasonExpired           = "COUPON_EXPIRED"
	ReasonMinOrderNotMet    = "MIN_ORDER_NOT_MET"
	ReasonUsageLimitReached = "USAGE_LIMIT_REACHED"
)

// Validator checks coupon applicability against a cart total and computes
// the discount amount.
type Validator interface {
	// Validate applies the coupon rules to cartTotal. A rule failure is
	// reported in the result, not as an error; errors are reserved for
	// infrastructure failures.
	Validate(ctx context.Context, code string, cartTotal float64) (*model.CouponValidationResult, error)
}

// validator implements Validator over the coupon repository.
type validator struct {
	coupons repository.CouponRepository
	now     func() time.Time
	logger  zerolog.Logger
}

// NewValidator creates a new coupon validator.
func NewValidator(coupons repository.CouponRepository, logger zerolog.Logger) Validator {
	return &validator{
		coupons: coupons,
		now:     time.Now,
		logger:  logger.With().Str("component", "coupon-validator").Logger(),
	}
}

// Validate applies the coupon rules in order, first failure wins:
// exists, active, not expired, minimum order met, uses remaining.
func (v *validator) Validate(ctx context.Context, code string, cartTotal float64) (*model.CouponValidationResult, error) {
	coupon, err := v.coupons.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}
	if coupon == nil {
		return v.invalid(code, cartTotal, ReasonNotFound, "Coupon not found"), nil
	}

	if !coupon.IsActive {
		return v.invalid(code, cartTotal, ReasonInactive, "Coupon is not active"), nil
	}

	if coupon.ExpiresAt != nil && !coupon.ExpiresAt.After(v.now()) {
		return v.invalid(code, cartTotal, ReasonExpired, "Coupon has expired"), nil
	}

	if cartTotal < coupon.MinOrderAmount {
		return v.invalid(code, cartTotal, ReasonMinOrderNotMet,
			fmt.Sprintf("Minimum order amount of $%.2f not met", coupon.MinOrderAmount)), nil
	}

	if coupon.MaxUses > 0 && coupon.CurrentUses >= coupon.MaxUses {
		return v.invalid(code, cartTotal, ReasonUsageLimitReached, "Coupon usage limit reached"), nil
	}

	discount := Discount(coupon, cartTotal)

	v.logger.Debug().
		Str("code", coupon.Code).
		Float64("cart_total", cartTotal).
		Float64("discount", discount).
		Msg("coupon validated")

	return &model.CouponValidationResult{
		Valid:          true,
		DiscountAmount: discount,
		FinalTotal:     model.RoundCents(cartTotal - discount),
		Coupon:         coupon,
	}, nil
}

func (v *validator) invalid(code string, cartTotal float64, reason, message string) *model.CouponValidationResult {
	v.logger.Debug().
		Str("code", code).
		Str("reason", reason).
		Msg("coupon rejected")

	return &model.CouponValidationResult{
		Valid:      false,
		FinalTotal: cartTotal,
		Reason:     reason,
		Message:    message,
	}
}

// Discount computes the discount a coupon grants on cartTotal. Percentage
// coupons are capped at the cart total; fixed coupons never discount more
// than the cart is worth.
func Discount(coupon *model.Coupon, cartTotal float64) float64 {
	var discount float64
	switch coupon.DiscountType {
	case model.DiscountPercentage:
		discount = model.RoundCents(cartTotal * coupon.DiscountValue / 100)
		if discount > cartTotal {
			discount = cartTotal
		}
	case model.DiscountFixed:
		discount = model.RoundCents(coupon.DiscountValue)
		if discount > cartTotal {
			discount = model.RoundCents(cartTotal)
		}
	}
	return discount
}
