package repository

import (
	"context"
	"errors"
	"fmt"

	"shopcore/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = `id, name, sku, price, stock, reorder_threshold, supplier_id, description, created_at`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Price, &p.Stock, &p.ReorderThreshold, &p.SupplierID, &p.Description, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetAll retrieves all products with pagination support.
func (r *productRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// GetBySKU retrieves a single product by its SKU.
func (r *productRepository) GetBySKU(ctx context.Context, sku string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("sku", sku).Msg("failed to query product by sku")
		return nil, fmt.Errorf("failed to query product by sku: %w", err)
	}

	return p, nil
}

// GetSupplier retrieves a supplier by its ID.
func (r *productRepository) GetSupplier(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	query := `SELECT id, name, contact_email, created_at FROM suppliers WHERE id = $1`

	var s model.Supplier
	err := r.pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.ContactEmail, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("supplier_id", id.String()).Msg("failed to query supplier")
		return nil, fmt.Errorf("failed to query supplier: %w", err)
	}

	return &s, nil
}

// ReserveStock atomically decrements stock by quantity, only if enough
// stock remains. Two concurrent checkouts for the last unit cannot both
// pass the guard; the loser sees zero rows updated.
func (r *productRepository) ReserveStock(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int) (*model.Product, error) {
	query := `
		UPDATE products
		SET stock = stock - $1
		WHERE id = $2 AND stock >= $1
		RETURNING ` + productColumns

	p, err := scanProduct(tx.QueryRow(ctx, query, quantity, productID))
	if err == nil {
		r.logger.Debug().
			Str("product_id", productID.String()).
			Int("quantity", quantity).
			Int("remaining", p.Stock).
			Msg("stock reserved")
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to reserve stock")
		return nil, fmt.Errorf("failed to reserve stock: %w", err)
	}

	// Guard failed: distinguish an unknown product from insufficient stock.
	var name string
	var stock int
	err = tx.QueryRow(ctx, `SELECT name, stock FROM products WHERE id = $1`, productID).Scan(&name, &stock)
	if errors.Is(err, pgx.ErrNoRows) {
		r.logger.Warn().Str("product_id", productID.String()).Msg("product not found during reservation")
		return nil, model.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product during reservation: %w", err)
	}

	r.logger.Warn().
		Str("product_id", productID.String()).
		Int("available", stock).
		Int("requested", quantity).
		Msg("insufficient stock")

	return nil, model.NewDomainError(
		model.ErrCodeInsufficientStock,
		fmt.Sprintf("Insufficient stock for %q (available: %d, requested: %d)", name, stock, quantity),
	)
}

// RestoreStock adds quantity back to a product's stock within tx.
func (r *productRepository) RestoreStock(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int) error {
	tag, err := tx.Exec(ctx, `UPDATE products SET stock = stock + $1 WHERE id = $2`, quantity, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to restore stock")
		return fmt.Errorf("failed to restore stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	r.logger.Debug().
		Str("product_id", productID.String()).
		Int("quantity", quantity).
		Msg("stock restored")

	return nil
}

// AdjustStock applies an additive stock change, keeping stock non-negative.
func (r *productRepository) AdjustStock(ctx context.Context, productID uuid.UUID, delta int) (*model.Product, error) {
	query := `
		UPDATE products
		SET stock = stock + $1
		WHERE id = $2 AND stock + $1 >= 0
		RETURNING ` + productColumns

	p, err := scanProduct(r.pool.QueryRow(ctx, query, delta, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			exists, checkErr := r.exists(ctx, productID)
			if checkErr != nil {
				return nil, checkErr
			}
			if !exists {
				return nil, model.ErrProductNotFound
			}
			return nil, model.NewDomainError(
				model.ErrCodeInvalidQuantity,
				fmt.Sprintf("Stock adjustment of %d would make stock negative", delta),
			)
		}
		r.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to adjust stock")
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}

	r.logger.Info().
		Str("product_id", productID.String()).
		Int("delta", delta).
		Int("stock", p.Stock).
		Msg("stock adjusted")

	return p, nil
}

func (r *productRepository) exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var found bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return found, nil
}
