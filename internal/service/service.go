package service

import (
	"context"

	"shopcore/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for product reads and admin restocking.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetBySKU retrieves a single product by its SKU.
	GetBySKU(ctx context.Context, sku string) (*model.Product, error)

	// Restock applies an admin stock increase.
	Restock(ctx context.Context, id uuid.UUID, quantity int) (*model.Product, error)
}

// OrderService defines operations for order placement and lifecycle.
type OrderService interface {
	// PlaceOrder converts a cart into a persisted order in a single
	// transaction: stock reservation, coupon re-validation, order and
	// line item inserts, coupon redemption. All-or-nothing.
	PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error)

	// GetByID retrieves an order with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// List retrieves orders with pagination, most recent first.
	List(ctx context.Context, page, limit int) (*model.OrderPage, error)

	// ListUnassigned retrieves orders without a customer.
	ListUnassigned(ctx context.Context) ([]model.Order, error)

	// ListByCustomer retrieves a customer's orders.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Order, error)

	// UpdateStatus moves an order through its lifecycle, enforcing the
	// transition table and restoring stock on cancellation or return.
	UpdateStatus(ctx context.Context, id uuid.UUID, target model.OrderStatus) (*model.Order, error)

	// AttachCustomer assigns an unassigned order to a customer.
	AttachCustomer(ctx context.Context, orderID, customerID uuid.UUID) (*model.Order, error)

	// DetachCustomer clears the customer reference on an order.
	DetachCustomer(ctx context.Context, orderID, customerID uuid.UUID) error
}

// CouponService defines coupon validation and admin management.
type CouponService interface {
	// Validate runs the read-only coupon check against a cart total.
	Validate(ctx context.Context, code string, cartTotal float64) (*model.CouponValidationResult, error)

	// Create creates a new coupon.
	Create(ctx context.Context, req *model.CouponCreate) (*model.Coupon, error)

	// GetByID retrieves a coupon.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error)

	// List retrieves all coupons.
	List(ctx context.Context) ([]model.Coupon, error)

	// Update applies a partial coupon update.
	Update(ctx context.Context, id uuid.UUID, patch *model.CouponUpdate) (*model.Coupon, error)

	// Delete removes a coupon.
	Delete(ctx context.Context, id uuid.UUID) error
}

// InvoiceService defines invoice generation and reads.
type InvoiceService interface {
	// Generate creates the invoice snapshot for a delivered order.
	// Idempotent: a second call returns the existing invoice unchanged.
	// The bool result reports whether a new invoice was created.
	Generate(ctx context.Context, orderID uuid.UUID) (*model.Invoice, bool, error)

	// GetByID retrieves an invoice.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)

	// List retrieves invoices, optionally filtered by customer.
	List(ctx context.Context, customerID *uuid.UUID) ([]model.Invoice, error)
}

// AlertService defines the restock alert monitor and admin actions.
type AlertService interface {
	// CheckProduct raises a restock alert when the product's stock has
	// fallen to or below its reorder threshold and no active alert exists.
	CheckProduct(ctx context.Context, productID uuid.UUID) error

	// Create manually raises an alert for a product. The one-active-alert
	// rule applies the same as for automatic checks.
	Create(ctx context.Context, req *model.AlertCreate) (*model.Alert, error)

	// UpdateStatus marks an active alert as ordered or dismissed.
	UpdateStatus(ctx context.Context, id uuid.UUID, target model.AlertStatus) (*model.Alert, error)

	// List retrieves alerts, optionally filtered by status.
	List(ctx context.Context, status *model.AlertStatus) ([]model.Alert, error)
}

// CustomerService defines customer management.
type CustomerService interface {
	// Create creates a new customer.
	Create(ctx context.Context, req *model.CustomerCreate) (*model.Customer, error)

	// GetByID retrieves a customer.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)

	// List retrieves all customers.
	List(ctx context.Context) ([]model.Customer, error)

	// Update applies a partial customer update.
	Update(ctx context.Context, id uuid.UUID, patch *model.CustomerUpdate) (*model.Customer, error)
}
