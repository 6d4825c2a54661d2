package repository

import (
	"context"

	"shopcore/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access,
// including the atomic stock reservation used by order placement.
type ProductRepository interface {
	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetBySKU retrieves a single product by its SKU.
	GetBySKU(ctx context.Context, sku string) (*model.Product, error)

	// GetSupplier retrieves a supplier by its ID.
	GetSupplier(ctx context.Context, id uuid.UUID) (*model.Supplier, error)

	// ReserveStock atomically decrements stock by quantity, but only if
	// enough stock remains. It returns the updated product row. A failed
	// guard surfaces as model.ErrProductNotFound or a typed
	// INSUFFICIENT_STOCK domain error; the caller's transaction must be
	// rolled back in that case.
	ReserveStock(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int) (*model.Product, error)

	// RestoreStock adds quantity back to a product's stock within the
	// provided transaction. Used by order cancellation and returns.
	RestoreStock(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int) error

	// AdjustStock applies an additive stock change outside any order
	// transaction (admin restock). The update keeps stock non-negative.
	AdjustStock(ctx context.Context, productID uuid.UUID, delta int) (*model.Product, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items.
	// Returns (nil, nil) when the order does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// GetForUpdate retrieves an order inside tx with a row lock, without
	// its items. Serialises concurrent status changes and invoice runs.
	GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, error)

	// ItemsByOrder retrieves the line items of an order within tx.
	ItemsByOrder(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) ([]model.OrderItem, error)

	// UpdateStatus writes the new status within tx and returns the
	// updated order. Transition legality is the service's concern.
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.OrderStatus) (*model.Order, error)

	// AttachCustomer assigns an unassigned order to a customer. The update
	// is conditional on customer_id being NULL.
	AttachCustomer(ctx context.Context, orderID, customerID uuid.UUID) (*model.Order, error)

	// DetachCustomer clears the customer reference, conditional on the
	// order currently belonging to that customer.
	DetachCustomer(ctx context.Context, orderID, customerID uuid.UUID) error

	// List retrieves orders with pagination, most recent first.
	List(ctx context.Context, page, limit int) (*model.OrderPage, error)

	// ListUnassigned retrieves all orders without a customer.
	ListUnassigned(ctx context.Context) ([]model.Order, error)

	// ListByCustomer retrieves all orders belonging to a customer.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Order, error)
}

// CouponRepository defines the interface for coupon data access operations.
type CouponRepository interface {
	// GetByCode retrieves a coupon by its code, case-insensitively.
	// Returns (nil, nil) when no such coupon exists.
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)

	// Redeem increments a coupon's use counter within tx, guarded so the
	// counter never exceeds max_uses. Returns false when the limit was
	// already reached.
	Redeem(ctx context.Context, tx pgx.Tx, couponID uuid.UUID) (bool, error)

	// Create inserts a new coupon. Codes are stored upper-case.
	Create(ctx context.Context, coupon *model.Coupon) error

	// GetByID retrieves a coupon by its ID. Returns (nil, nil) on miss.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error)

	// List retrieves all coupons, newest first.
	List(ctx context.Context) ([]model.Coupon, error)

	// Update applies a partial update and returns the updated coupon.
	Update(ctx context.Context, id uuid.UUID, patch *model.CouponUpdate) (*model.Coupon, error)

	// Delete removes a coupon. Returns false when it did not exist.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// InvoiceRepository defines the interface for invoice data access operations.
type InvoiceRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// GetByOrderID retrieves the invoice of an order within tx.
	// Returns (nil, nil) when the order has not been invoiced.
	GetByOrderID(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (*model.Invoice, error)

	// NextInvoiceNumber claims the next sequential invoice number within
	// tx. The counter row lock serialises concurrent generation, keeping
	// numbers strictly increasing and gapless.
	NextInvoiceNumber(ctx context.Context, tx pgx.Tx) (int, error)

	// LineItemSnapshots copies the order's line items joined with current
	// product name and SKU, within tx.
	LineItemSnapshots(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) ([]model.InvoiceLineItem, error)

	// Create inserts a new invoice within tx.
	Create(ctx context.Context, tx pgx.Tx, invoice *model.Invoice) error

	// GetByID retrieves an invoice by its ID. Returns (nil, nil) on miss.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)

	// List retrieves invoices, newest first, optionally filtered by customer.
	List(ctx context.Context, customerID *uuid.UUID) ([]model.Invoice, error)
}

// AlertRepository defines the interface for restock alert data access.
type AlertRepository interface {
	// CreateIfAbsent inserts an alert unless an active one already exists
	// for the same product. The partial unique index on active alerts
	// makes this a conditional insert, not a check-then-insert race.
	// Returns false when an active alert was already present.
	CreateIfAbsent(ctx context.Context, alert *model.Alert) (bool, error)

	// UpdateStatus moves an alert out of the active state. The update is
	// conditional on the alert still being active; ordered and dismissed
	// are terminal. Returns the updated alert.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.AlertStatus) (*model.Alert, error)

	// GetByID retrieves an alert by its ID. Returns (nil, nil) on miss.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Alert, error)

	// List retrieves alerts, newest first, optionally filtered by status.
	List(ctx context.Context, status *model.AlertStatus) ([]model.Alert, error)
}

// CustomerRepository defines the interface for customer data access.
type CustomerRepository interface {
	// Create inserts a new customer.
	Create(ctx context.Context, customer *model.Customer) error

	// GetByID retrieves a customer by its ID. Returns (nil, nil) on miss.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)

	// List retrieves all customers, newest first.
	List(ctx context.Context) ([]model.Customer, error)

	// Update applies a partial update and returns the updated customer.
	Update(ctx context.Context, id uuid.UUID, patch *model.CustomerUpdate) (*model.Customer, error)
}
