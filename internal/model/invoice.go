package model

import (
	"time"

	"github.com/google/uuid"
)

// CustomerSnapshot is the customer data frozen into an invoice at
// generation time. Later customer edits never alter it.
type CustomerSnapshot struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Company         string `json:"company,omitempty"`
	Phone           string `json:"phone,omitempty"`
	ShippingStreet  string `json:"shippingStreet,omitempty"`
	ShippingCity    string `json:"shippingCity,omitempty"`
	ShippingState   string `json:"shippingState,omitempty"`
	ShippingZip     string `json:"shippingZip,omitempty"`
	ShippingCountry string `json:"shippingCountry,omitempty"`
}

// InvoiceLineItem is a line item frozen into an invoice, copied by value
// from the order item and product rows.
type InvoiceLineItem struct {
	ProductName string  `json:"productName"`
	SKU         string  `json:"sku"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	LineTotal   float64 `json:"lineTotal"`
}

// Invoice is an immutable point-in-time snapshot of a delivered order.
// InvoiceNumber is sequential without gaps; at most one invoice exists
// per order.
type Invoice struct {
	ID               uuid.UUID         `json:"id" db:"id"`
	InvoiceNumber    int               `json:"invoiceNumber" db:"invoice_number"`
	OrderID          uuid.UUID         `json:"orderId" db:"order_id"`
	CustomerID       *uuid.UUID        `json:"customerId,omitempty" db:"customer_id"`
	CustomerSnapshot CustomerSnapshot  `json:"customerSnapshot" db:"customer_snapshot"`
	LineItems        []InvoiceLineItem `json:"lineItems" db:"line_items"`
	Subtotal         float64           `json:"subtotal" db:"subtotal"`
	CouponCode       *string           `json:"couponCode,omitempty" db:"coupon_code"`
	DiscountAmount   float64           `json:"discountAmount" db:"discount_amount"`
	GrandTotal       float64           `json:"grandTotal" db:"grand_total"`
	CreatedAt        time.Time         `json:"createdAt" db:"created_at"`
}
