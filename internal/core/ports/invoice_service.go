// internal/core/ports/invoice_service.go
package ports

import (
	"context"

	"github.com/ammerola/invoices-be/internal/core/domain"
)

// InvoiceService defines the application service port for invoices.
type InvoiceService interface {
	// Get returns the detail view of one invoice or domain.ErrInvoiceNotFound.
	Get(ctx context.Context, invoiceNo string) (*domain.InvoiceDetail, error)
	// List returns the low-detail view of every invoice.
	List(ctx context.Context) ([]domain.InvoiceView, error)
	// ListDetailed returns every invoice with its batches.
	ListDetailed(ctx context.Context) ([]domain.InvoiceDetail, error)
	// Add creates an invoice and its batches atomically.
	Add(ctx context.Context, invoice *domain.Invoice, batches []domain.Batch) error
	// Update applies a flat attribute map to the invoice it names.
	Update(ctx context.Context, data map[string]any) error
	// Delete removes an invoice and its batches.
	Delete(ctx context.Context, invoiceNo string) error
}
