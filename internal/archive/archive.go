// Package archive stores copies of issued invoices in external object
// storage. Archiving is advisory: the database row is the legal document,
// the archive is a convenience export.
package archive

import (
	"context"

	"shopcore/internal/model"
)

// Archiver persists a copy of an issued invoice outside the database.
type Archiver interface {
	// StoreInvoice writes the invoice snapshot to the archive.
	StoreInvoice(ctx context.Context, invoice *model.Invoice) error
}

// NopArchiver discards invoices. Used when archiving is disabled.
type NopArchiver struct{}

// StoreInvoice does nothing.
func (NopArchiver) StoreInvoice(context.Context, *model.Invoice) error {
	return nil
}
