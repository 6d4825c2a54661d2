package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shopcore/internal/coupon"
	"shopcore/internal/model"
	"shopcore/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// couponService implements CouponService.
type couponService struct {
	couponRepo repository.CouponRepository
	validator  coupon.Validator
	logger     zerolog.Logger
}

// NewCouponService creates a new coupon service.
func NewCouponService(couponRepo repository.CouponRepository, validator coupon.Validator, logger zerolog.Logger) CouponService {
	return &couponService{
		couponRepo: couponRepo,
		validator:  validator,
		logger:     logger.With().Str("service", "coupon").Logger(),
	}
}

// Validate runs the read-only coupon check against a cart total.
func (s *couponService) Validate(ctx context.Context, code string, cartTotal float64) (*model.CouponValidationResult, error) {
	return s.validator.Validate(ctx, code, cartTotal)
}

// Create creates a new coupon.
func (s *couponService) Create(ctx context.Context, req *model.CouponCreate) (*model.Coupon, error) {
	c := &model.Coupon{
		ID:             uuid.New(),
		Code:           strings.ToUpper(req.Code),
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		MinOrderAmount: req.MinOrderAmount,
		MaxUses:        req.MaxUses,
		CurrentUses:    0,
		IsActive:       true,
		ExpiresAt:      req.ExpiresAt,
		CreatedAt:      time.Now(),
	}

	if err := s.couponRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// GetByID retrieves a coupon.
func (s *couponService) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	c, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	if c == nil {
		return nil, model.ErrCouponNotFound
	}
	return c, nil
}

// List retrieves all coupons.
func (s *couponService) List(ctx context.Context) ([]model.Coupon, error) {
	return s.couponRepo.List(ctx)
}

// Update applies a partial coupon update.
func (s *couponService) Update(ctx context.Context, id uuid.UUID, patch *model.CouponUpdate) (*model.Coupon, error) {
	c, err := s.couponRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, model.ErrCouponNotFound
	}
	return c, nil
}

// Delete removes a coupon.
func (s *couponService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.couponRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return model.ErrCouponNotFound
	}
	return nil
}
