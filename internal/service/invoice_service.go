package service

import (
	"context"
	"fmt"
	"time"

	"shopcore/internal/archive"
	"shopcore/internal/model"
	"shopcore/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// invoiceService implements InvoiceService.
type invoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	archiver     archive.Archiver
	logger       zerolog.Logger
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	archiver archive.Archiver,
	logger zerolog.Logger,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		archiver:     archiver,
		logger:       logger.With().Str("service", "invoice").Logger(),
	}
}

// Generate creates the invoice snapshot for a delivered order. Customer and
// line item data are copied by value, so later edits to customer or product
// rows never alter an issued invoice. The order row lock plus the counter
// row update serialise concurrent generation: numbers stay strictly
// increasing and gapless, and a repeat call returns the existing invoice.
func (s *invoiceService) Generate(ctx context.Context, orderID uuid.UUID) (*model.Invoice, bool, error) {
	tx, err := s.invoiceRepo.BeginTx(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to generate invoice: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	order, err := s.orderRepo.GetForUpdate(ctx, tx, orderID)
	if err != nil {
		return nil, false, err
	}
	if order == nil {
		err = model.ErrOrderNotFound
		return nil, false, err
	}

	existing, err := s.invoiceRepo.GetByOrderID(ctx, tx, orderID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		// Already invoiced: idempotent return, no new sequence number.
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
		}
		s.logger.Debug().
			Str("order_id", orderID.String()).
			Int("invoice_number", existing.InvoiceNumber).
			Msg("invoice already exists, returning existing")
		return existing, false, nil
	}

	if order.Status != model.StatusDelivered {
		err = model.NewDomainError(
			model.ErrCodeOrderNotInvoiceable,
			fmt.Sprintf("Invoice can only be generated for delivered orders (current status: %s)", order.Status),
		)
		return nil, false, err
	}

	var snapshot model.CustomerSnapshot
	if order.CustomerID != nil {
		var customer *model.Customer
		customer, err = s.customerRepo.GetByID(ctx, *order.CustomerID)
		if err != nil {
			return nil, false, err
		}
		if customer == nil {
			err = model.ErrCustomerNotFound
			return nil, false, err
		}
		snapshot = customer.Snapshot()
	}

	lines, err := s.invoiceRepo.LineItemSnapshots(ctx, tx, orderID)
	if err != nil {
		return nil, false, err
	}

	var subtotal float64
	for _, li := range lines {
		subtotal += li.LineTotal
	}
	subtotal = model.RoundCents(subtotal)

	number, err := s.invoiceRepo.NextInvoiceNumber(ctx, tx)
	if err != nil {
		return nil, false, err
	}

	invoice := &model.Invoice{
		ID:               uuid.New(),
		InvoiceNumber:    number,
		OrderID:          orderID,
		CustomerID:       order.CustomerID,
		CustomerSnapshot: snapshot,
		LineItems:        lines,
		Subtotal:         subtotal,
		CouponCode:       order.CouponCode,
		DiscountAmount:   order.DiscountAmount,
		GrandTotal:       model.RoundCents(subtotal - order.DiscountAmount),
		CreatedAt:        time.Now(),
	}

	if err = s.invoiceRepo.Create(ctx, tx, invoice); err != nil {
		return nil, false, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("failed to commit invoice: %w", err)
	}

	// Archiving is best effort; the invoice is already committed.
	if archiveErr := s.archiver.StoreInvoice(ctx, invoice); archiveErr != nil {
		s.logger.Warn().
			Err(archiveErr).
			Str("invoice_id", invoice.ID.String()).
			Msg("failed to archive invoice")
	}

	return invoice, true, nil
}

// GetByID retrieves an invoice.
func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	if invoice == nil {
		return nil, model.ErrInvoiceNotFound
	}
	return invoice, nil
}

// List retrieves invoices, optionally filtered by customer.
func (s *invoiceService) List(ctx context.Context, customerID *uuid.UUID) ([]model.Invoice, error) {
	return s.invoiceRepo.List(ctx, customerID)
}
