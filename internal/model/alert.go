package model

import (
	"time"

	"github.com/google/uuid"
)

// AlertStatus is the lifecycle state of a restock alert. Ordered and
// dismissed are terminal for that alert record; a later low-stock crossing
// creates a fresh alert instead of reviving an old one.
type AlertStatus string

const (
	AlertActive    AlertStatus = "active"
	AlertOrdered   AlertStatus = "ordered"
	AlertDismissed AlertStatus = "dismissed"
)

// Valid reports whether s is a known alert status.
func (s AlertStatus) Valid() bool {
	switch s {
	case AlertActive, AlertOrdered, AlertDismissed:
		return true
	}
	return false
}

// AlertTypeRestock is the only alert type the monitor raises automatically.
const AlertTypeRestock = "restock"

// Alert signals that a product's stock has fallen to or below its reorder
// threshold. At most one active alert exists per product.
type Alert struct {
	ID               uuid.UUID   `json:"id" db:"id"`
	Type             string      `json:"type" db:"type"`
	Message          string      `json:"message" db:"message"`
	Status           AlertStatus `json:"status" db:"status"`
	ProductID        uuid.UUID   `json:"productId" db:"product_id"`
	SupplierID       *uuid.UUID  `json:"supplierId,omitempty" db:"supplier_id"`
	CurrentStock     int         `json:"currentStock" db:"current_stock"`
	ReorderThreshold int         `json:"reorderThreshold" db:"reorder_threshold"`
	CreatedAt        time.Time   `json:"createdAt" db:"created_at"`
}

// AlertStatusUpdate represents the payload for an alert status change.
type AlertStatusUpdate struct {
	Status AlertStatus `json:"status" validate:"required"`
}

// AlertCreate represents the payload for manually raising an alert. Stock
// figures and the supplier default to the product's current values when
// omitted.
type AlertCreate struct {
	Type             string     `json:"type,omitempty"`
	Message          string     `json:"message" validate:"required"`
	ProductID        uuid.UUID  `json:"productId" validate:"required"`
	SupplierID       *uuid.UUID `json:"supplierId,omitempty"`
	CurrentStock     *int       `json:"currentStock,omitempty" validate:"omitempty,gte=0"`
	ReorderThreshold *int       `json:"reorderThreshold,omitempty" validate:"omitempty,gte=0"`
}
