// internal/adapters/db/invoice_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ammerola/invoices-be/internal/core/domain"
	"github.com/ammerola/invoices-be/internal/core/ports"
)

var invoiceColumns = []string{
	"invoice_no", "invoice_date", "supplier_name", "amount", "remarks", "created_on",
}

// invoiceRepository implements ports.InvoiceRepository
type invoiceRepository struct {
	q      querier
	logger *slog.Logger
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *Database, logger *slog.Logger) ports.InvoiceRepository {
	return &invoiceRepository{
		q:      db,
		logger: logger.With(slog.String("repository", "invoice")),
	}
}

func (r *invoiceRepository) WithTx(tx pgx.Tx) ports.InvoiceRepository {
	return &invoiceRepository{q: tx, logger: r.logger}
}

// Save inserts a new invoice row
func (r *invoiceRepository) Save(ctx context.Context, invoice *domain.Invoice) error {
	query := `
		INSERT INTO invoices (
			invoice_no, invoice_date, supplier_name, amount, remarks, created_on
		) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.q.Exec(ctx, query,
		invoice.InvoiceNo,
		invoice.InvoiceDate,
		invoice.SupplierName,
		invoice.Amount,
		invoice.Remarks,
		invoice.CreatedOn,
	)
	if err != nil {
		if isUniqueViolation(err, "invoices_pkey") {
			return domain.NewKeyError(domain.ErrDuplicateInvoice, invoice.InvoiceNo)
		}
		return fmt.Errorf("failed to save invoice: %w", err)
	}

	r.logger.DebugContext(ctx, "invoice saved",
		slog.String("invoice_no", invoice.InvoiceNo))

	return nil
}

// Update rewrites the mutable columns of an existing invoice.
func (r *invoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) error {
	query, args, err := squirrel.Update("invoices").
		SetMap(map[string]interface{}{
			"invoice_date":  invoice.InvoiceDate,
			"supplier_name": invoice.SupplierName,
			"amount":        invoice.Amount,
			"remarks":       invoice.Remarks,
		}).
		Where(squirrel.Eq{"invoice_no": invoice.InvoiceNo}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewKeyError(domain.ErrInvoiceNotFound, invoice.InvoiceNo)
	}

	return nil
}

// FindByNo retrieves an invoice by its number
func (r *invoiceRepository) FindByNo(ctx context.Context, invoiceNo string) (*domain.Invoice, error) {
	return r.findOne(ctx, invoiceNo, "")
}

func (r *invoiceRepository) FindByNoForUpdate(ctx context.Context, invoiceNo string) (*domain.Invoice, error) {
	return r.findOne(ctx, invoiceNo, "FOR UPDATE")
}

func (r *invoiceRepository) findOne(ctx context.Context, invoiceNo, suffix string) (*domain.Invoice, error) {
	qb := squirrel.Select(invoiceColumns...).
		From("invoices").
		Where(squirrel.Eq{"invoice_no": invoiceNo}).
		PlaceholderFormat(squirrel.Dollar)
	if suffix != "" {
		qb = qb.Suffix(suffix)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	invoice, err := scanOne(r.q.QueryRow(ctx, query, args...), scanInvoice)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}
	return invoice, nil
}

// FindAll returns every invoice, oldest first.
func (r *invoiceRepository) FindAll(ctx context.Context) ([]domain.Invoice, error) {
	query, args, err := squirrel.Select(invoiceColumns...).
		From("invoices").
		OrderBy("created_on ASC", "invoice_no ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices, err := scanMany(rows, scanInvoice)
	if err != nil {
		return nil, fmt.Errorf("failed to scan invoices: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepository) Exists(ctx context.Context, invoiceNo string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM invoices WHERE invoice_no = $1)`, invoiceNo,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check invoice existence: %w", err)
	}
	return exists, nil
}

// Delete removes the invoice row. Batches must be removed first.
func (r *invoiceRepository) Delete(ctx context.Context, invoiceNo string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE invoice_no = $1`, invoiceNo)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewKeyError(domain.ErrInvoiceNotFound, invoiceNo)
	}

	r.logger.InfoContext(ctx, "invoice deleted",
		slog.String("invoice_no", invoiceNo))

	return nil
}

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var (
		inv         domain.Invoice
		invoiceDate pgtype.Date
	)
	if err := row.Scan(
		&inv.InvoiceNo,
		&invoiceDate,
		&inv.SupplierName,
		&inv.Amount,
		&inv.Remarks,
		&inv.CreatedOn,
	); err != nil {
		return nil, err
	}
	inv.InvoiceDate = dateValue(invoiceDate)
	return &inv, nil
}

// dateValue converts a DATE column to a UTC midnight time, zero when NULL.
func dateValue(d pgtype.Date) time.Time {
	if !d.Valid {
		return time.Time{}
	}
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// dateParam maps the zero time to NULL.
func dateParam(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return pgtype.Date{Time: t, Valid: true}
}
