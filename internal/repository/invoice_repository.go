package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"shopcore/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const invoiceColumns = `id, invoice_number, order_id, customer_id, customer_snapshot, line_items, subtotal, coupon_code, discount_amount, grand_total, created_at`

// invoiceRepository implements the InvoiceRepository interface using PostgreSQL.
type invoiceRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewInvoiceRepository creates a new PostgreSQL-backed invoice repository.
func NewInvoiceRepository(pool *pgxpool.Pool, logger zerolog.Logger) InvoiceRepository {
	return &invoiceRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "invoice").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *invoiceRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

func scanInvoice(row pgx.Row) (*model.Invoice, error) {
	var inv model.Invoice
	var snapshot, lineItems []byte
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.OrderID, &inv.CustomerID,
		&snapshot, &lineItems, &inv.Subtotal, &inv.CouponCode, &inv.DiscountAmount,
		&inv.GrandTotal, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(snapshot, &inv.CustomerSnapshot); err != nil {
		return nil, fmt.Errorf("failed to decode customer snapshot: %w", err)
	}
	if err := json.Unmarshal(lineItems, &inv.LineItems); err != nil {
		return nil, fmt.Errorf("failed to decode line items: %w", err)
	}
	return &inv, nil
}

// GetByOrderID retrieves the invoice of an order within tx.
func (r *invoiceRepository) GetByOrderID(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (*model.Invoice, error) {
	inv, err := scanInvoice(tx.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE order_id = $1`, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to query invoice by order")
		return nil, fmt.Errorf("failed to query invoice by order: %w", err)
	}
	return inv, nil
}

// NextInvoiceNumber claims the next sequential invoice number within tx.
// The single counter row is updated in place; its row lock serialises
// concurrent claims, and because the claim commits together with the
// invoice insert, the sequence has no gaps.
func (r *invoiceRepository) NextInvoiceNumber(ctx context.Context, tx pgx.Tx) (int, error) {
	var number int
	err := tx.QueryRow(ctx, `UPDATE invoice_counter SET value = value + 1 WHERE id = 1 RETURNING value`).Scan(&number)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to claim invoice number")
		return 0, fmt.Errorf("failed to claim invoice number: %w", err)
	}
	return number, nil
}

// LineItemSnapshots copies the order's line items joined with current
// product name and SKU, within tx.
func (r *invoiceRepository) LineItemSnapshots(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) ([]model.InvoiceLineItem, error) {
	query := `
		SELECT oi.quantity, oi.price_at_purchase, COALESCE(p.name, 'Unknown product'), COALESCE(p.sku, 'N/A')
		FROM order_items oi
		LEFT JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1
		ORDER BY oi.product_id
	`

	rows, err := tx.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to query line item snapshots")
		return nil, fmt.Errorf("failed to query line item snapshots: %w", err)
	}
	defer rows.Close()

	var lines []model.InvoiceLineItem
	for rows.Next() {
		var li model.InvoiceLineItem
		if err := rows.Scan(&li.Quantity, &li.UnitPrice, &li.ProductName, &li.SKU); err != nil {
			return nil, fmt.Errorf("failed to scan line item snapshot: %w", err)
		}
		li.LineTotal = model.RoundCents(li.UnitPrice * float64(li.Quantity))
		lines = append(lines, li)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line item snapshots: %w", err)
	}

	return lines, nil
}

// Create inserts a new invoice within tx.
func (r *invoiceRepository) Create(ctx context.Context, tx pgx.Tx, invoice *model.Invoice) error {
	snapshot, err := json.Marshal(invoice.CustomerSnapshot)
	if err != nil {
		return fmt.Errorf("failed to encode customer snapshot: %w", err)
	}
	lineItems, err := json.Marshal(invoice.LineItems)
	if err != nil {
		return fmt.Errorf("failed to encode line items: %w", err)
	}

	query := `
		INSERT INTO invoices (id, invoice_number, order_id, customer_id, customer_snapshot, line_items, subtotal, coupon_code, discount_amount, grand_total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = tx.Exec(ctx, query,
		invoice.ID, invoice.InvoiceNumber, invoice.OrderID, invoice.CustomerID,
		snapshot, lineItems, invoice.Subtotal, invoice.CouponCode,
		invoice.DiscountAmount, invoice.GrandTotal, invoice.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", invoice.OrderID.String()).
			Int("invoice_number", invoice.InvoiceNumber).
			Msg("failed to create invoice")
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	r.logger.Info().
		Str("invoice_id", invoice.ID.String()).
		Int("invoice_number", invoice.InvoiceNumber).
		Str("order_id", invoice.OrderID.String()).
		Msg("invoice created")

	return nil
}

// GetByID retrieves an invoice by its ID.
func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	inv, err := scanInvoice(r.pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("invoice_id", id.String()).Msg("invoice not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("invoice_id", id.String()).Msg("failed to query invoice")
		return nil, fmt.Errorf("failed to query invoice: %w", err)
	}
	return inv, nil
}

// List retrieves invoices, newest first, optionally filtered by customer.
func (r *invoiceRepository) List(ctx context.Context, customerID *uuid.UUID) ([]model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices`
	var args []any
	if customerID != nil {
		query += ` WHERE customer_id = $1`
		args = append(args, *customerID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query invoices")
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []model.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan invoice row")
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, *inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}

	return invoices, nil
}
