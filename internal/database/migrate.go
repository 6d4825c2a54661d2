package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// schema contains the full DDL for the application. All statements are
// idempotent so Migrate can run on every startup.
const schema = `
	CREATE TABLE IF NOT EXISTS suppliers (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		contact_email VARCHAR(255),
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		sku VARCHAR(100) NOT NULL UNIQUE,
		price DECIMAL(10, 2) NOT NULL CHECK (price >= 0),
		stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		reorder_threshold INTEGER NOT NULL DEFAULT 10 CHECK (reorder_threshold >= 0),
		supplier_id UUID REFERENCES suppliers(id),
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS customers (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		company VARCHAR(255),
		phone VARCHAR(50),
		shipping_street VARCHAR(255),
		shipping_city VARCHAR(100),
		shipping_state VARCHAR(100),
		shipping_zip VARCHAR(20),
		shipping_country VARCHAR(100),
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS coupons (
		id UUID PRIMARY KEY,
		code VARCHAR(50) NOT NULL UNIQUE,
		discount_type VARCHAR(20) NOT NULL CHECK (discount_type IN ('percentage', 'fixed')),
		discount_value DECIMAL(10, 2) NOT NULL CHECK (discount_value >= 0),
		min_order_amount DECIMAL(10, 2) NOT NULL DEFAULT 0,
		max_uses INTEGER NOT NULL DEFAULT 0 CHECK (max_uses >= 0),
		current_uses INTEGER NOT NULL DEFAULT 0 CHECK (current_uses >= 0),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		expires_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		customer_id UUID REFERENCES customers(id),
		total_amount DECIMAL(10, 2) NOT NULL CHECK (total_amount >= 0),
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		coupon_code VARCHAR(50),
		discount_amount DECIMAL(10, 2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS order_items (
		id UUID PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id UUID NOT NULL REFERENCES products(id),
		quantity INTEGER NOT NULL CHECK (quantity >= 1),
		price_at_purchase DECIMAL(10, 2) NOT NULL CHECK (price_at_purchase >= 0)
	);

	CREATE TABLE IF NOT EXISTS invoices (
		id UUID PRIMARY KEY,
		invoice_number INTEGER NOT NULL UNIQUE,
		order_id UUID NOT NULL UNIQUE REFERENCES orders(id),
		customer_id UUID,
		customer_snapshot JSONB NOT NULL DEFAULT '{}',
		line_items JSONB NOT NULL DEFAULT '[]',
		subtotal DECIMAL(10, 2) NOT NULL,
		coupon_code VARCHAR(50),
		discount_amount DECIMAL(10, 2) NOT NULL DEFAULT 0,
		grand_total DECIMAL(10, 2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS invoice_counter (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		value INTEGER NOT NULL
	);

	INSERT INTO invoice_counter (id, value) VALUES (1, 100)
	ON CONFLICT (id) DO NOTHING;

	CREATE TABLE IF NOT EXISTS alerts (
		id UUID PRIMARY KEY,
		type VARCHAR(50) NOT NULL DEFAULT 'restock',
		message TEXT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'ordered', 'dismissed')),
		product_id UUID NOT NULL REFERENCES products(id),
		supplier_id UUID REFERENCES suppliers(id),
		current_stock INTEGER NOT NULL,
		reorder_threshold INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_alerts_active_product
		ON alerts (product_id) WHERE status = 'active';

	CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders (customer_id);
	CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status);
	CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items (order_id);
	CREATE INDEX IF NOT EXISTS idx_invoices_customer ON invoices (customer_id);
`

// Migrate creates the database schema. It is safe to run repeatedly.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	logger.Info().Msg("running database migrations")

	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info().Msg("database migrations complete")

	return nil
}
