package model

import (
	"time"

	"github.com/google/uuid"
)

// DiscountType distinguishes percentage coupons from fixed-amount ones.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Coupon represents a discount coupon. Codes are stored upper-case and
// matched case-insensitively. MaxUses of zero means unlimited.
type Coupon struct {
	ID             uuid.UUID    `json:"id" db:"id"`
	Code           string       `json:"code" db:"code"`
	DiscountType   DiscountType `json:"discountType" db:"discount_type"`
	DiscountValue  float64      `json:"discountValue" db:"discount_value"`
	MinOrderAmount float64      `json:"minOrderAmount" db:"min_order_amount"`
	MaxUses        int          `json:"maxUses" db:"max_uses"`
	CurrentUses    int          `json:"currentUses" db:"current_uses"`
	IsActive       bool         `json:"isActive" db:"is_active"`
	ExpiresAt      *time.Time   `json:"expiresAt,omitempty" db:"expires_at"`
	CreatedAt      time.Time    `json:"createdAt" db:"created_at"`
}

// CouponCreate represents the payload for creating a coupon.
type CouponCreate struct {
	Code           string       `json:"code" validate:"required,min=3,max=32"`
	DiscountType   DiscountType `json:"discountType" validate:"required,oneof=percentage fixed"`
	DiscountValue  float64      `json:"discountValue" validate:"required,gt=0"`
	MinOrderAmount float64      `json:"minOrderAmount" validate:"gte=0"`
	MaxUses        int          `json:"maxUses" validate:"gte=0"`
	ExpiresAt      *time.Time   `json:"expiresAt,omitempty"`
}

// CouponUpdate represents a partial coupon update. Nil fields are left
// untouched.
type CouponUpdate struct {
	DiscountValue  *float64   `json:"discountValue,omitempty" validate:"omitempty,gt=0"`
	MinOrderAmount *float64   `json:"minOrderAmount,omitempty" validate:"omitempty,gte=0"`
	MaxUses        *int       `json:"maxUses,omitempty" validate:"omitempty,gte=0"`
	IsActive       *bool      `json:"isActive,omitempty"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
}

// CouponValidateRequest is the payload for the validation endpoint.
type CouponValidateRequest struct {
	Code      string  `json:"code" validate:"required"`
	CartTotal float64 `json:"cartTotal" validate:"gte=0"`
}

// CouponValidationResult is the outcome of a read-only coupon check.
// Reason carries a machine-readable failure code when Valid is false.
type CouponValidationResult struct {
	Valid          bool    `json:"valid"`
	DiscountAmount float64 `json:"discountAmount"`
	FinalTotal     float64 `json:"finalTotal"`
	Reason         string  `json:"reason,omitempty"`
	Message        string  `json:"message,omitempty"`
	Coupon         *Coupon `json:"coupon,omitempty"`
}
