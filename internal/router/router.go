package router

import (
	"net/http"

	"shopcore/internal/handler"
	"shopcore/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers bundles the HTTP handlers the router wires up.
type Handlers struct {
	Product  *handler.ProductHandler
	Order    *handler.OrderHandler
	Invoice  *handler.InvoiceHandler
	Coupon   *handler.CouponHandler
	Alert    *handler.AlertHandler
	Customer *handler.CustomerHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, apiKey string, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Products
	mux.HandleFunc("GET /api/products", h.Product.GetAll)
	mux.HandleFunc("GET /api/products/sku/{sku}", h.Product.GetBySKU)
	mux.HandleFunc("GET /api/products/{id}", h.Product.GetByID)
	mux.HandleFunc("POST /api/products/{id}/restock", h.Product.Restock)

	// Orders
	mux.HandleFunc("POST /api/orders", h.Order.Create)
	mux.HandleFunc("GET /api/orders", h.Order.List)
	mux.HandleFunc("GET /api/orders/unassigned", h.Order.Unassigned)
	mux.HandleFunc("GET /api/orders/{id}", h.Order.GetByID)
	mux.HandleFunc("PATCH /api/orders/{id}/status", h.Order.UpdateStatus)
	mux.HandleFunc("PUT /api/orders/{id}/customer/{customerID}", h.Order.AttachCustomer)
	mux.HandleFunc("DELETE /api/orders/{id}/customer/{customerID}", h.Order.DetachCustomer)
	mux.HandleFunc("POST /api/orders/{id}/invoice", h.Order.GenerateInvoice)

	// Invoices
	mux.HandleFunc("GET /api/invoices", h.Invoice.List)
	mux.HandleFunc("GET /api/invoices/{id}", h.Invoice.GetByID)

	// Coupons
	mux.HandleFunc("POST /api/coupons/validate", h.Coupon.Validate)
	mux.HandleFunc("POST /api/coupons", h.Coupon.Create)
	mux.HandleFunc("GET /api/coupons", h.Coupon.List)
	mux.HandleFunc("GET /api/coupons/{id}", h.Coupon.GetByID)
	mux.HandleFunc("PATCH /api/coupons/{id}", h.Coupon.Update)
	mux.HandleFunc("DELETE /api/coupons/{id}", h.Coupon.Delete)

	// Alerts
	mux.HandleFunc("POST /api/alerts", h.Alert.Create)
	mux.HandleFunc("GET /api/alerts", h.Alert.List)
	mux.HandleFunc("PATCH /api/alerts/{id}", h.Alert.UpdateStatus)

	// Customers
	mux.HandleFunc("POST /api/customers", h.Customer.Create)
	mux.HandleFunc("GET /api/customers", h.Customer.List)
	mux.HandleFunc("GET /api/customers/{id}", h.Customer.GetByID)
	mux.HandleFunc("PATCH /api/customers/{id}", h.Customer.Update)
	mux.HandleFunc("GET /api/customers/{id}/orders", h.Customer.Orders)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var root http.Handler = mux
	root = middleware.APIKeyAuth(apiKey, logger)(root)
	root = middleware.CORS(root)
	root = middleware.Logging(logger)(root)
	root = middleware.Recovery(logger)(root)

	return root
}
