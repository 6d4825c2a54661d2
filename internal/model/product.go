package model

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a product in the store catalogue.
type Product struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	Name             string     `json:"name" db:"name"`
	SKU              string     `json:"sku" db:"sku"`
	Price            float64    `json:"price" db:"price"`
	Stock            int        `json:"stock" db:"stock"`
	ReorderThreshold int        `json:"reorderThreshold" db:"reorder_threshold"`
	SupplierID       *uuid.UUID `json:"supplierId,omitempty" db:"supplier_id"`
	Description      string     `json:"description" db:"description"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
}

// Supplier represents a product supplier, referenced by restock alerts.
type Supplier struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	ContactEmail string    `json:"contactEmail" db:"contact_email"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// RestockRequest represents the payload for an admin stock increase.
type RestockRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}
