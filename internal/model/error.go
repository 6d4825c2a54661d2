package model

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON             = "INVALID_JSON"
	ErrCodeMissingField            = "MISSING_FIELD"
	ErrCodeInvalidQuantity         = "INVALID_QUANTITY"
	ErrCodeProductNotFound         = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound           = "ORDER_NOT_FOUND"
	ErrCodeCouponNotFound          = "COUPON_NOT_FOUND"
	ErrCodeCustomerNotFound        = "CUSTOMER_NOT_FOUND"
	ErrCodeAlertNotFound           = "ALERT_NOT_FOUND"
	ErrCodeInvoiceNotFound         = "INVOICE_NOT_FOUND"
	ErrCodeInsufficientStock       = "INSUFFICIENT_STOCK"
	ErrCodeInvalidCoupon           = "INVALID_COUPON"
	ErrCodeIllegalStatusTransition = "ILLEGAL_STATUS_TRANSITION"
	ErrCodeOrderAlreadyAssigned    = "ORDER_ALREADY_ASSIGNED"
	ErrCodeOrderNotInvoiceable     = "ORDER_NOT_INVOICEABLE"
	ErrCodeDuplicateEmail          = "DUPLICATE_EMAIL"
	ErrCodeDuplicateCode           = "DUPLICATE_CODE"
	ErrCodeDuplicateAlert          = "DUPLICATE_ALERT"
	ErrCodeUnauthorised            = "UNAUTHORIZED"
	ErrCodeInternalError           = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure with a machine-readable code.
// Handlers map codes to HTTP statuses so callers can tell "stock ran out"
// apart from "coupon invalid" or "order already in a terminal state".
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidQuantity   = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrOrderNotFound     = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrCouponNotFound    = NewDomainError(ErrCodeCouponNotFound, "Coupon not found")
	ErrCustomerNotFound  = NewDomainError(ErrCodeCustomerNotFound, "Customer not found")
	ErrAlertNotFound     = NewDomainError(ErrCodeAlertNotFound, "Alert not found")
	ErrInvoiceNotFound   = NewDomainError(ErrCodeInvoiceNotFound, "Invoice not found")
	ErrInsufficientStock = NewDomainError(ErrCodeInsufficientStock, "Insufficient stock for one or more items")
	ErrOrderAssigned     = NewDomainError(ErrCodeOrderAlreadyAssigned, "Order is already assigned to a customer")
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
