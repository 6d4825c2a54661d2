package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
	StatusReturned   OrderStatus = "returned"
)

// orderStatusTransitions is the explicit transition table for order statuses.
// Cancellation is reachable only before shipping; delivered orders may still
// come back as returned. Cancelled and returned are terminal.
var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {StatusReturned},
	StatusCancelled:  {},
	StatusReturned:   {},
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatusTransitions[s]
	return ok
}

// CanTransitionTo reports whether the status machine permits moving from s
// to target.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range orderStatusTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the legal next statuses from s.
func (s OrderStatus) AllowedTransitions() []OrderStatus {
	return orderStatusTransitions[s]
}

// RestoresStock reports whether entering this status returns reserved
// stock to the shelf.
func (s OrderStatus) RestoresStock() bool {
	return s == StatusCancelled || s == StatusReturned
}

// Order represents a customer order. Immutable after creation except for
// status and the customer reference.
type Order struct {
	ID             uuid.UUID   `json:"id" db:"id"`
	CustomerID     *uuid.UUID  `json:"customerId,omitempty" db:"customer_id"`
	TotalAmount    float64     `json:"totalAmount" db:"total_amount"`
	Status         OrderStatus `json:"status" db:"status"`
	CouponCode     *string     `json:"couponCode,omitempty" db:"coupon_code"`
	DiscountAmount float64     `json:"discountAmount" db:"discount_amount"`
	CreatedAt      time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time   `json:"updatedAt" db:"updated_at"`
	Items          []OrderItem `json:"items,omitempty"`
}

// OrderItem is a line item in an order. PriceAtPurchase is captured from the
// product row at checkout and never follows later price edits.
type OrderItem struct {
	ID              uuid.UUID `json:"id" db:"id"`
	OrderID         uuid.UUID `json:"orderId" db:"order_id"`
	ProductID       uuid.UUID `json:"productId" db:"product_id"`
	Quantity        int       `json:"quantity" db:"quantity"`
	PriceAtPurchase float64   `json:"priceAtPurchase" db:"price_at_purchase"`
}

// OrderRequest represents the request payload for creating an order.
type OrderRequest struct {
	CustomerID *uuid.UUID         `json:"customerId,omitempty"`
	CouponCode *string            `json:"couponCode,omitempty"`
	Items      []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderItemRequest represents a single cart line in an order request.
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// OrderStatusUpdate represents the payload for a status change.
type OrderStatusUpdate struct {
	Status OrderStatus `json:"status" validate:"required"`
}

// OrderPage is a paginated slice of orders.
type OrderPage struct {
	Items []Order `json:"items"`
	Total int     `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
	Pages int     `json:"pages"`
}
