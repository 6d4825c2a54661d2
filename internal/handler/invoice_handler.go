package handler

import (
	"net/http"

	"shopcore/internal/model"
	"shopcore/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// InvoiceHandler handles invoice read requests.
type InvoiceHandler struct {
	service service.InvoiceService
	logger  zerolog.Logger
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(service service.InvoiceService, logger zerolog.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		service: service,
		logger:  logger.With().Str("handler", "invoice").Logger(),
	}
}

// GetByID handles GET /api/invoices/{id} requests.
func (h *InvoiceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	invoiceID, ok := pathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	invoice, err := h.service.GetByID(r.Context(), invoiceID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if invoice == nil {
		writeError(w, http.StatusNotFound, model.ErrCodeInvoiceNotFound, "invoice not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, invoice)
}

// List handles GET /api/invoices requests with an optional customerId filter.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	var customerID *uuid.UUID
	if raw := r.URL.Query().Get("customerId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid customerId format", h.logger)
			return
		}
		customerID = &id
	}

	invoices, err := h.service.List(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if invoices == nil {
		invoices = []model.Invoice{}
	}

	writeJSON(w, http.StatusOK, invoices)
}
