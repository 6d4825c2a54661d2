package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a store customer. Shipping fields feed invoice
// snapshots at generation time.
type Customer struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Email           string    `json:"email" db:"email"`
	Company         string    `json:"company,omitempty" db:"company"`
	Phone           string    `json:"phone,omitempty" db:"phone"`
	ShippingStreet  string    `json:"shippingStreet,omitempty" db:"shipping_street"`
	ShippingCity    string    `json:"shippingCity,omitempty" db:"shipping_city"`
	ShippingState   string    `json:"shippingState,omitempty" db:"shipping_state"`
	ShippingZip     string    `json:"shippingZip,omitempty" db:"shipping_zip"`
	ShippingCountry string    `json:"shippingCountry,omitempty" db:"shipping_country"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// Snapshot copies the invoice-relevant customer fields by value.
func (c *Customer) Snapshot() CustomerSnapshot {
	return CustomerSnapshot{
		Name:            c.Name,
		Email:           c.Email,
		Company:         c.Company,
		Phone:           c.Phone,
		ShippingStreet:  c.ShippingStreet,
		ShippingCity:    c.ShippingCity,
		ShippingState:   c.ShippingState,
		ShippingZip:     c.ShippingZip,
		ShippingCountry: c.ShippingCountry,
	}
}

// CustomerCreate represents the payload for creating a customer.
type CustomerCreate struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Company         string `json:"company,omitempty"`
	Phone           string `json:"phone,omitempty"`
	ShippingStreet  string `json:"shippingStreet,omitempty"`
	ShippingCity    string `json:"shippingCity,omitempty"`
	ShippingState   string `json:"shippingState,omitempty"`
	ShippingZip     string `json:"shippingZip,omitempty"`
	ShippingCountry string `json:"shippingCountry,omitempty"`
}

// CustomerUpdate represents a partial customer update. Nil fields are left
// untouched.
type CustomerUpdate struct {
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	Company         *string `json:"company,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	ShippingStreet  *string `json:"shippingStreet,omitempty"`
	ShippingCity    *string `json:"shippingCity,omitempty"`
	ShippingState   *string `json:"shippingState,omitempty"`
	ShippingZip     *string `json:"shippingZip,omitempty"`
	ShippingCountry *string `json:"shippingCountry,omitempty"`
}
