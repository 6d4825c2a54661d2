package handler

import (
	"net/http"
	"strconv"

	"shopcore/internal/model"
	"shopcore/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	orders   service.OrderService
	invoices service.InvoiceService
	logger   zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders service.OrderService, invoices service.InvoiceService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orders:   orders,
		invoices: invoices,
		logger:   logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	order, err := h.orders.GetByID(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if order == nil {
		writeError(w, http.StatusNotFound, model.ErrCodeOrderNotFound, "order not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// List handles GET /api/orders requests with page/limit query parameters.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.orders.List(r.Context(), page, limit)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Unassigned handles GET /api/orders/unassigned requests.
func (h *OrderHandler) Unassigned(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListUnassigned(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}

	writeJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles PATCH /api/orders/{id}/status requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req model.OrderStatusUpdate
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// AttachCustomer handles PUT /api/orders/{id}/customer/{customerID} requests.
func (h *OrderHandler) AttachCustomer(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}
	customerID, ok := pathUUID(w, r, "customerID", h.logger)
	if !ok {
		return
	}

	order, err := h.orders.AttachCustomer(r.Context(), orderID, customerID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// DetachCustomer handles DELETE /api/orders/{id}/customer/{customerID} requests.
func (h *OrderHandler) DetachCustomer(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}
	customerID, ok := pathUUID(w, r, "customerID", h.logger)
	if !ok {
		return
	}

	if err := h.orders.DetachCustomer(r.Context(), orderID, customerID); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GenerateInvoice handles POST /api/orders/{id}/invoice requests.
// Generation is idempotent: a repeat call returns the existing invoice
// with 200 instead of 201.
func (h *OrderHandler) GenerateInvoice(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	invoice, created, err := h.invoices.Generate(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	writeJSON(w, status, invoice)
}
