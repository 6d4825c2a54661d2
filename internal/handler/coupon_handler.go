package handler

import (
	"net/http"

	"shopcore/internal/model"
	"shopcore/internal/service"

	"github.com/rs/zerolog"
)

// CouponHandler handles coupon validation and admin CRUD requests.
type CouponHandler struct {
	service service.CouponService
	logger  zerolog.Logger
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(service service.CouponService, logger zerolog.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		logger:  logger.With().Str("handler", "coupon").Logger(),
	}
}

// Validate handles POST /api/coupons/validate requests. An invalid
// coupon is a valid answer, not an error, so the response is always 200
// with the valid flag and a reason.
func (h *CouponHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req model.CouponValidateRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	result, err := h.service.Validate(r.Context(), req.Code, req.CartTotal)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Create handles POST /api/coupons requests.
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CouponCreate
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	coupon, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, coupon)
}

// List handles GET /api/coupons requests.
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if coupons == nil {
		coupons = []model.Coupon{}
	}

	writeJSON(w, http.StatusOK, coupons)
}

// GetByID handles GET /api/coupons/{id} requests.
func (h *CouponHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	couponID, ok := pathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	coupon, err := h.service.GetByID(r.Context(), couponID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if coupon == nil {
		writeError(w, http.StatusNotFound, model.ErrCodeCouponNotFound, "coupon not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, coupon)
}

// Update handles PATCH /api/coupons/{id} requests.
func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	couponID, ok := pathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var patch model.CouponUpdate
	if !decodeAndValidate(w, r, &patch, h.logger) {
		return
	}

	coupon, err := h.service.Update(r.Context(), couponID, &patch)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, coupon)
}

// Delete handles DELETE /api/coupons/{id} requests.
func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request) {
	couponID, ok := pathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), couponID); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
