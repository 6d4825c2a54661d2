package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"shopcore/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponRepository_GetByCode_CaseInsensitive(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewCouponRepository(pool, zerolog.Nop())

	coupon := seedCoupon(t, pool, "SAVE10", 100, 0)

	for _, code := range []string{"SAVE10", "save10", "Save10"} {
		got, err := repo.GetByCode(ctx, code)
		require.NoError(t, err)
		require.NotNil(t, got, "lookup %q", code)
		assert.Equal(t, coupon.ID, got.ID)
	}

	missing, err := repo.GetByCode(ctx, "NOSUCH")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCouponRepository_Redeem_GuardedIncrement(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewCouponRepository(pool, zerolog.Nop())

	coupon := seedCoupon(t, pool, "TWICE", 2, 1)

	// One use left: the first redemption wins, the second is refused.
	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	redeemed, err := repo.Redeem(ctx, tx, coupon.ID)
	require.NoError(t, err)
	assert.True(t, redeemed)
	require.NoError(t, tx.Commit(ctx))

	tx, err = pool.Begin(ctx)
	require.NoError(t, err)
	redeemed, err = repo.Redeem(ctx, tx, coupon.ID)
	require.NoError(t, err)
	assert.False(t, redeemed)
	require.NoError(t, tx.Rollback(ctx))

	got, err := repo.GetByID(ctx, coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CurrentUses)
}

func TestCouponRepository_Redeem_ConcurrentLimit(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewCouponRepository(pool, zerolog.Nop())

	coupon := seedCoupon(t, pool, "LIMIT3", 3, 0)

	// Five checkouts race for three uses. The counter must stop at the cap.
	const checkouts = 5
	results := make(chan bool, checkouts)
	var wg sync.WaitGroup

	for i := 0; i < checkouts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			tx, err := pool.Begin(ctx)
			if err != nil {
				results <- false
				return
			}

			redeemed, err := repo.Redeem(ctx, tx, coupon.ID)
			if err != nil || !redeemed {
				_ = tx.Rollback(ctx)
				results <- false
				return
			}
			results <- tx.Commit(ctx) == nil
		}()
	}
	wg.Wait()
	close(results)

	var succeeded int
	for ok := range results {
		if ok {
			succeeded++
		}
	}
	assert.Equal(t, 3, succeeded)

	got, err := repo.GetByID(ctx, coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.CurrentUses)
}

func TestCouponRepository_Redeem_UnlimitedUses(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewCouponRepository(pool, zerolog.Nop())

	coupon := seedCoupon(t, pool, "FOREVER", 0, 9999)

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	redeemed, err := repo.Redeem(ctx, tx, coupon.ID)
	require.NoError(t, err)
	assert.True(t, redeemed)
	require.NoError(t, tx.Commit(ctx))
}

func TestCouponRepository_Create(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewCouponRepository(pool, zerolog.Nop())

	expires := time.Now().Add(24 * time.Hour)
	coupon := &model.Coupon{
		Code:           "newcode",
		DiscountType:   model.DiscountFixed,
		DiscountValue:  5,
		MinOrderAmount: 20,
		MaxUses:        10,
		IsActive:       true,
		ExpiresAt:      &expires,
	}

	require.NoError(t, repo.Create(ctx, coupon))

	// Codes are stored upper-case.
	got, err := repo.GetByCode(ctx, "NEWCODE")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "NEWCODE", got.Code)

	// A second coupon with the same code in any casing is rejected.
	dup := &model.Coupon{Code: "NewCode", DiscountType: model.DiscountFixed, DiscountValue: 1}
	err = repo.Create(ctx, dup)
	require.Error(t, err)
	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeDuplicateCode, domainErr.Code)
}

func TestCouponRepository_Update(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewCouponRepository(pool, zerolog.Nop())

	coupon := seedCoupon(t, pool, "PATCHME", 10, 0)

	inactive := false
	newValue := 25.0
	updated, err := repo.Update(ctx, coupon.ID, &model.CouponUpdate{
		IsActive:      &inactive,
		DiscountValue: &newValue,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.False(t, updated.IsActive)
	assert.Equal(t, 25.0, updated.DiscountValue)
	// Untouched fields survive the patch.
	assert.Equal(t, 10, updated.MaxUses)
}

func TestCouponRepository_Delete(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewCouponRepository(pool, zerolog.Nop())

	coupon := seedCoupon(t, pool, "GONE", 10, 0)

	deleted, err := repo.Delete(ctx, coupon.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := repo.GetByID(ctx, coupon.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err = repo.Delete(ctx, coupon.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
