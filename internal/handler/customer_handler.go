package handler

import (
	"net/http"

	"shopcore/internal/model"
	"shopcore/internal/service"

	"github.com/rs/zerolog"
)

// CustomerHandler handles customer-related HTTP requests.
type CustomerHandler struct {
	customers service.CustomerService
	orders    service.OrderService
	logger    zerolog.Logger
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(customers service.CustomerService, orders service.OrderService, logger zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{
		customers: customers,
		orders:    orders,
		logger:    logger.With().Str("handler", "customer").Logger(),
	}
}

// Create handles POST /api/customers requests.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CustomerCreate
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	customer, err := h.customers.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, customer)
}

// List handles GET /api/customers requests.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if customers == nil {
		customers = []model.Customer{}
	}

	writeJSON(w, http.StatusOK, customers)
}

// GetByID handles GET /api/customers/{id} requests.
func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	customerID, ok := pathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	customer, err := h.customers.GetByID(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if customer == nil {
		writeError(w, http.StatusNotFound, model.ErrCodeCustomerNotFound, "customer not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

// Update handles PATCH /api/customers/{id} requests.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	customerID, ok := pathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var patch model.CustomerUpdate
	if !decodeAndValidate(w, r, &patch, h.logger) {
		return
	}

	customer, err := h.customers.Update(r.Context(), customerID, &patch)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

// Orders handles GET /api/customers/{id}/orders requests.
func (h *CustomerHandler) Orders(w http.ResponseWriter, r *http.Request) {
	customerID, ok := pathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	customer, err := h.customers.GetByID(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if customer == nil {
		writeError(w, http.StatusNotFound, model.ErrCodeCustomerNotFound, "customer not found", h.logger)
		return
	}

	orders, err := h.orders.ListByCustomer(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}

	writeJSON(w, http.StatusOK, orders)
}
