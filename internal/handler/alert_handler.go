package handler

import (
	"net/http"

	"shopcore/internal/model"
	"shopcore/internal/service"

	"github.com/rs/zerolog"
)

// AlertHandler handles restock alert HTTP requests.
type AlertHandler struct {
	service service.AlertService
	logger  zerolog.Logger
}

// NewAlertHandler creates a new alert handler.
func NewAlertHandler(service service.AlertService, logger zerolog.Logger) *AlertHandler {
	return &AlertHandler{
		service: service,
		logger:  logger.With().Str("handler", "alert").Logger(),
	}
}

// Create handles POST /api/alerts requests, a manual alert for a product.
func (h *AlertHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.AlertCreate
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	alert, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, alert)
}

// List handles GET /api/alerts requests with an optional status filter.
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *model.AlertStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := model.AlertStatus(raw)
		if !s.Valid() {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid alert status filter", h.logger)
			return
		}
		status = &s
	}

	alerts, err := h.service.List(r.Context(), status)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if alerts == nil {
		alerts = []model.Alert{}
	}

	writeJSON(w, http.StatusOK, alerts)
}

// UpdateStatus handles PATCH /api/alerts/{id} requests. Active alerts can
// be marked ordered or dismissed; both are terminal.
func (h *AlertHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	alertID, ok := pathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req model.AlertStatusUpdate
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	alert, err := h.service.UpdateStatus(r.Context(), alertID, req.Status)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, alert)
}
