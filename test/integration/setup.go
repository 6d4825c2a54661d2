package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"shopcore/internal/database"
	"shopcore/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool, and
// applies the schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.Migrate(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedProduct inserts a product and returns it.
func SeedProduct(t *testing.T, pool *pgxpool.Pool, name, sku string, price float64, stock, threshold int) *model.Product {
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

	_, err := pool.Exec(context.Background(),
		`INSERT INTO products (id, name, sku, price, stock, reorder_threshold, description, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, '', $7)`,
		p.ID, p.Name, p.SKU, p.Price, p.Stock, p.ReorderThreshold, p.CreatedAt)
	if err != nil {
		t.Fatalf("failed to seed product %s: %v", sku, err)
	}

	return p
}

// SeedCoupon inserts an active percentage coupon and returns it.
func SeedCoupon(t *testing.T, pool *pgxpool.Pool, code string, percent float64, maxUses int) *model.Coupon {
	t.Helper()

	c := &model.Coupon{
		ID:            uuid.New(),
		Code:          code,
		DiscountType:  model.DiscountPercentage,
		DiscountValue: percent,
		MaxUses:       maxUses,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO coupons (id, code, discount_type, discount_value, min_order_amount, max_uses, current_uses, expires_at, is_active, created_at)
		 VALUES ($1, $2, $3, $4, 0, $5, 0, NULL, TRUE, $6)`,
		c.ID, c.Code, c.DiscountType, c.DiscountValue, c.MaxUses, c.CreatedAt)
	if err != nil {
		t.Fatalf("failed to seed coupon %s: %v", code, err)
	}

	return c
}

// CleanupDB removes all data from the domain tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"invoices", "alerts", "order_items", "orders", "coupons", "customers", "products", "suppliers"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
	// Reset the counter so invoice numbering starts at 101 per test.
	if _, err := pool.Exec(ctx, `UPDATE invoice_counter SET value = 100 WHERE id = 1`); err != nil {
		t.Logf("failed to reset invoice counter: %v", err)
	}
}
