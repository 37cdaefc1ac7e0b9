// internal/core/ports/invoice_repository.go
package ports

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/ammerola/invoices-be/internal/core/domain"
)

// InvoiceRepository defines the persistence port for invoices.
// Find methods return (nil, nil) when the invoice does not exist.
type InvoiceRepository interface {
	// WithTx returns a repository bound to tx.
	WithTx(tx pgx.Tx) InvoiceRepository
	Save(ctx context.Context, invoice *domain.Invoice) error
	Update(ctx context.Context, invoice *domain.Invoice) error
	FindByNo(ctx context.Context, invoiceNo string) (*domain.Invoice, error)
	// FindByNoForUpdate locks the row until the surrounding transaction ends.
	FindByNoForUpdate(ctx context.Context, invoiceNo string) (*domain.Invoice, error)
	FindAll(ctx context.Context) ([]domain.Invoice, error)
	Exists(ctx context.Context, invoiceNo string) (bool, error)
	Delete(ctx context.Context, invoiceNo string) error
}

// BatchRepository defines the persistence port for batches.
type BatchRepository interface {
	WithTx(tx pgx.Tx) BatchRepository
	Save(ctx context.Context, batch *domain.Batch) error
	FindByInvoiceNo(ctx context.Context, invoiceNo string) ([]domain.Batch, error)
	FindAll(ctx context.Context) ([]domain.Batch, error)
	Exists(ctx context.Context, batchNo string) (bool, error)
	DeleteByInvoiceNo(ctx context.Context, invoiceNo string) (int64, error)
}
