package repository

import (
	"context"
	"testing"
	"time"

	"shopcore/internal/database"
	"shopcore/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer, runs the real migrations
// against it, and returns a connection pool.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(ctx, pool, zerolog.Nop()))

	t.Cleanup(func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	})

	return pool
}

// seedProduct inserts a product row and returns it.
func seedProduct(t *testing.T, pool *pgxpool.Pool, name, sku string, price float64, stock, threshold int) *model.Product {
	t.Helper()

	p := &model.Product{
		ID:               uuid.New(),
		Name:             name,
		SKU:              sku,
		Price:            price,
		Stock:            stock,
		ReorderThreshold: threshold,
		CreatedAt:        time.Now(),
	}

	_, err := pool.Exec(context.Background(), `
		INSERT INTO products (id, name, sku, price, stock, reorder_threshold, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, '', $7)
	`, p.ID, p.Name, p.SKU, p.Price, p.Stock, p.ReorderThreshold, p.CreatedAt)
	require.NoError(t, err)

	return p
}

// seedCustomer inserts a customer row and returns it.
func seedCustomer(t *testing.T, pool *pgxpool.Pool, name, email string) *model.Customer {
	t.Helper()

	c := &model.Customer{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now(),
	}

	_, err := pool.Exec(context.Background(), `
		INSERT INTO customers (id, name, email, created_at)
		VALUES ($1, $2, $3, $4)
	`, c.ID, c.Name, c.Email, c.CreatedAt)
	require.NoError(t, err)

	return c
}

// seedCoupon inserts a coupon row and returns it.
func seedCoupon(t *testing.T, pool *pgxpool.Pool, code string, maxUses, currentUses int) *model.Coupon {
	t.Helper()

	c := &model.Coupon{
		ID:            uuid.New(),
		Code:          code,
		DiscountType:  model.DiscountPercentage,
		DiscountValue: 10,
		MaxUses:       maxUses,
		CurrentUses:   currentUses,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}

	_, err := pool.Exec(context.Background(), `
		INSERT INTO coupons (id, code, discount_type, discount_value, min_order_amount, max_uses, current_uses, is_active, created_at)
		VALUES ($1, $2, $3, $4, 0, $5, $6, $7, $8)
	`, c.ID, c.Code, c.DiscountType, c.DiscountValue, c.MaxUses, c.CurrentUses, c.IsActive, c.CreatedAt)
	require.NoError(t, err)

	return c
}

// seedOrder inserts an order with one line item per product and returns it.
func seedOrder(t *testing.T, pool *pgxpool.Pool, status model.OrderStatus, customerID *uuid.UUID, lines map[*model.Product]int) *model.Order {
	t.Helper()
	ctx := context.Background()

	var total float64
	for p, qty := range lines {
		total += p.Price * float64(qty)
	}

	o := &model.Order{
		ID:          uuid.New(),
		CustomerID:  customerID,
		TotalAmount: model.RoundCents(total),
		Status:      status,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	_, err := pool.Exec(ctx, `
		INSERT INTO orders (id, customer_id, total_amount, status, discount_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, $5, $6)
	`, o.ID, o.CustomerID, o.TotalAmount, o.Status, o.CreatedAt, o.UpdatedAt)
	require.NoError(t, err)

	for p, qty := range lines {
		item := model.OrderItem{
			ID:              uuid.New(),
			OrderID:         o.ID,
			ProductID:       p.ID,
			Quantity:        qty,
			PriceAtPurchase: p.Price,
		}
		_, err := pool.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, price_at_purchase)
			VALUES ($1, $2, $3, $4, $5)
		`, item.ID, item.OrderID, item.ProductID, item.Quantity, item.PriceAtPurchase)
		require.NoError(t, err)
		o.Items = append(o.Items, item)
	}

	return o
}
