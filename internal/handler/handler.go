package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"shopcore/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already sent; an encode failure here cannot be
	// reported to the client anymore.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// statusForCode maps a domain error code to an HTTP status.
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeInsufficientStock,
		model.ErrCodeIllegalStatusTransition,
		model.ErrCodeOrderAlreadyAssigned,
		model.ErrCodeOrderNotInvoiceable,
		model.ErrCodeDuplicateEmail,
		model.ErrCodeDuplicateCode,
		model.ErrCodeDuplicateAlert:
		return http.StatusConflict
	case model.ErrCodeInvalidCoupon:
		return http.StatusUnprocessableEntity
	case model.ErrCodeProductNotFound,
		model.ErrCodeOrderNotFound,
		model.ErrCodeCouponNotFound,
		model.ErrCodeCustomerNotFound,
		model.ErrCodeAlertNotFound,
		model.ErrCodeInvoiceNotFound:
		return http.StatusNotFound
	case model.ErrCodeInvalidJSON,
		model.ErrCodeMissingField,
		model.ErrCodeInvalidQuantity:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError translates a service error into an HTTP response.
// Domain errors map via their code; anything else is an opaque 500.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeError(w, statusForCode(domainErr.Code), domainErr.Code, domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("unexpected service error")
	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}

// decodeAndValidate decodes the request body into dst and runs struct
// validation. A false return means the response has already been written.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			msg := fmt.Sprintf("field %q failed validation on %q", verrs[0].Field(), verrs[0].Tag())
			writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, msg, logger)
			return false
		}
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid request", logger)
		return false
	}

	return true
}

// pathUUID parses a UUID path parameter. A false return means the
// response has already been written.
func pathUUID(w http.ResponseWriter, r *http.Request, name string, logger zerolog.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON,
			fmt.Sprintf("invalid %s format", name), logger)
		return uuid.Nil, false
	}
	return id, true
}
