// internal/adapters/db/batch_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ammerola/invoices-be/internal/core/domain"
	"github.com/ammerola/invoices-be/internal/core/ports"
)

var batchColumns = []string{
	"batch_no", "invoice_no", "product_name", "mfg_date", "exp_date",
	"quantity", "num_of_ships", "available", "created_on",
}

// batchRepository implements ports.BatchRepository
type batchRepository struct {
	q      querier
	logger *slog.Logger
}

// NewBatchRepository creates a new batch repository
func NewBatchRepository(db *Database, logger *slog.Logger) ports.BatchRepository {
	return &batchRepository{
		q:      db,
		logger: logger.With(slog.String("repository", "batch")),
	}
}

func (r *batchRepository) WithTx(tx pgx.Tx) ports.BatchRepository {
	return &batchRepository{q: tx, logger: r.logger}
}

// Save inserts a batch. Available is stored as computed by the caller.
func (r *batchRepository) Save(ctx context.Context, batch *domain.Batch) error {
	query := `
		INSERT INTO batches (
			batch_no, invoice_no, product_name, mfg_date, exp_date,
			quantity, num_of_ships, available, created_on
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.q.Exec(ctx, query,
		batch.BatchNo,
		batch.InvoiceNo,
		batch.ProductName,
		dateParam(batch.MfgDate),
		dateParam(batch.ExpDate),
		batch.Quantity,
		batch.NumOfShips,
		batch.Available,
		batch.CreatedOn,
	)
	if err != nil {
		if isUniqueViolation(err, "batches_pkey") {
			return domain.NewKeyError(domain.ErrDuplicateBatch, batch.BatchNo)
		}
		return fmt.Errorf("failed to save batch: %w", err)
	}

	r.logger.DebugContext(ctx, "batch saved",
		slog.String("batch_no", batch.BatchNo),
		slog.String("invoice_no", batch.InvoiceNo))

	return nil
}

func (r *batchRepository) FindByInvoiceNo(ctx context.Context, invoiceNo string) ([]domain.Batch, error) {
	return r.list(ctx, squirrel.Eq{"invoice_no": invoiceNo})
}

// FindAll returns every batch ordered by invoice, then creation.
func (r *batchRepository) FindAll(ctx context.Context) ([]domain.Batch, error) {
	return r.list(ctx, nil)
}

func (r *batchRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]domain.Batch, error) {
	qb := squirrel.Select(batchColumns...).
		From("batches").
		OrderBy("invoice_no ASC", "created_on ASC", "batch_no ASC").
		PlaceholderFormat(squirrel.Dollar)
	if where != nil {
		qb = qb.Where(where)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}

	batches, err := scanMany(rows, scanBatch)
	if err != nil {
		return nil, fmt.Errorf("failed to scan batches: %w", err)
	}
	return batches, nil
}

func (r *batchRepository) Exists(ctx context.Context, batchNo string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM batches WHERE batch_no = $1)`, batchNo,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check batch existence: %w", err)
	}
	return exists, nil
}

// DeleteByInvoiceNo removes all batches of an invoice and reports how many.
func (r *batchRepository) DeleteByInvoiceNo(ctx context.Context, invoiceNo string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM batches WHERE invoice_no = $1`, invoiceNo)
	if err != nil {
		return 0, fmt.Errorf("failed to delete batches: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanBatch(row pgx.Row) (*domain.Batch, error) {
	var (
		b                domain.Batch
		mfgDate, expDate pgtype.Date
	)
	if err := row.Scan(
		&b.BatchNo,
		&b.InvoiceNo,
		&b.ProductName,
		&mfgDate,
		&expDate,
		&b.Quantity,
		&b.NumOfShips,
		&b.Available,
		&b.CreatedOn,
	); err != nil {
		return nil, err
	}
	b.MfgDate = dateValue(mfgDate)
	b.ExpDate = dateValue(expDate)
	return &b, nil
}
