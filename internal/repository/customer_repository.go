package repository

import (
	"context"
	"errors"
	"fmt"

	"shopcore/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const customerColumns = `id, name, email, company, phone, shipping_street, shipping_city, shipping_state, shipping_zip, shipping_country, created_at`

// customerRepository implements the CustomerRepository interface using PostgreSQL.
type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Company, &c.Phone, &c.ShippingStreet,
		&c.ShippingCity, &c.ShippingState, &c.ShippingZip, &c.ShippingCountry, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new customer.
func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, company, phone, shipping_street, shipping_city, shipping_state, shipping_zip, shipping_country, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		customer.ID, customer.Name, customer.Email, customer.Company, customer.Phone,
		customer.ShippingStreet, customer.ShippingCity, customer.ShippingState,
		customer.ShippingZip, customer.ShippingCountry, customer.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.NewDomainError(model.ErrCodeDuplicateEmail, "A customer with this email already exists")
		}
		r.logger.Error().Err(err).Str("email", customer.Email).Msg("failed to create customer")
		return fmt.Errorf("failed to create customer: %w", err)
	}

	r.logger.Info().Str("customer_id", customer.ID.String()).Msg("customer created")
	return nil
}

// GetByID retrieves a customer by its ID.
func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	c, err := scanCustomer(r.pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("customer_id", id.String()).Msg("customer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}
	return c, nil
}

// List retrieves all customers, newest first.
func (r *customerRepository) List(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query customers")
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan customer row")
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

// Update applies a partial update and returns the updated customer.
func (r *customerRepository) Update(ctx context.Context, id uuid.UUID, patch *model.CustomerUpdate) (*model.Customer, error) {
	query := `
		UPDATE customers
		SET name             = COALESCE($1, name),
		    email            = COALESCE($2, email),
		    company          = COALESCE($3, company),
		    phone            = COALESCE($4, phone),
		    shipping_street  = COALESCE($5, shipping_street),
		    shipping_city    = COALESCE($6, shipping_city),
		    shipping_state   = COALESCE($7, shipping_state),
		    shipping_zip     = COALESCE($8, shipping_zip),
		    shipping_country = COALESCE($9, shipping_country)
		WHERE id = $10
		RETURNING ` + customerColumns

	c, err := scanCustomer(r.pool.QueryRow(ctx, query,
		patch.Name, patch.Email, patch.Company, patch.Phone,
		patch.ShippingStreet, patch.ShippingCity, patch.ShippingState,
		patch.ShippingZip, patch.ShippingCountry, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, model.NewDomainError(model.ErrCodeDuplicateEmail, "A customer with this email already exists")
		}
		r.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to update customer")
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	r.logger.Info().Str("customer_id", id.String()).Msg("customer updated")
	return c, nil
}
