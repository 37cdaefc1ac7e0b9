// internal/core/services/invoice.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ammerola/invoices-be/internal/core/domain"
	"github.com/ammerola/invoices-be/internal/core/ports"
)

const (
	cacheKeyList         = "invoice:list"
	cacheKeyDetailPrefix = "invoice:detail:"
	cachePattern         = "invoice:*"
)

// InvoiceService handles the invoice/batch workflow.
type InvoiceService struct {
	invoices ports.InvoiceRepository
	batches  ports.BatchRepository
	tx       ports.Transactor
	cache    ports.CacheRepository
	logger   *slog.Logger
	now      func() time.Time

	// generation counts invalidations so a read that raced a write does not
	// refill the cache with what it fetched before the commit.
	generation atomic.Uint64
}

// Statically assert that *InvoiceService implements the InvoiceService interface.
var _ ports.InvoiceService = (*InvoiceService)(nil)

// NewInvoiceService creates a new invoice service. cache may be nil, in
// which case every read goes to the store.
func NewInvoiceService(
	invoices ports.InvoiceRepository,
	batches ports.BatchRepository,
	tx ports.Transactor,
	cache ports.CacheRepository,
	logger *slog.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoices: invoices,
		batches:  batches,
		tx:       tx,
		cache:    cache,
		logger:   logger.With(slog.String("service", "invoice")),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Get retrieves one invoice with its batches.
func (s *InvoiceService) Get(ctx context.Context, invoiceNo string) (*domain.InvoiceDetail, error) {
	invoiceNo = strings.TrimSpace(invoiceNo)
	if invoiceNo == "" {
		return nil, domain.NewKeyError(domain.ErrMissingData, string(domain.FieldInvoiceNo))
	}

	detail, err := readThrough(ctx, s, cacheKeyDetailPrefix+invoiceNo, func(ctx context.Context) (domain.InvoiceDetail, error) {
		invoice, err := s.invoices.FindByNo(ctx, invoiceNo)
		if err != nil {
			return domain.InvoiceDetail{}, fmt.Errorf("failed to get invoice: %w", err)
		}
		if invoice == nil {
			return domain.InvoiceDetail{}, domain.NewKeyError(domain.ErrInvoiceNotFound, invoiceNo)
		}

		batches, err := s.batches.FindByInvoiceNo(ctx, invoiceNo)
		if err != nil {
			return domain.InvoiceDetail{}, fmt.Errorf("failed to get batches: %w", err)
		}
		return invoice.Detail(batches), nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// List retrieves the low-detail view of every invoice.
func (s *InvoiceService) List(ctx context.Context) ([]domain.InvoiceView, error) {
	return readThrough(ctx, s, cacheKeyList, func(ctx context.Context) ([]domain.InvoiceView, error) {
		invoices, err := s.invoices.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list invoices: %w", err)
		}

		views := make([]domain.InvoiceView, 0, len(invoices))
		for _, inv := range invoices {
			views = append(views, inv.View())
		}
		return views, nil
	})
}

// ListDetailed retrieves every invoice together with its batches. It is
// used by the spreadsheet export and bypasses the cache.
func (s *InvoiceService) ListDetailed(ctx context.Context) ([]domain.InvoiceDetail, error) {
	invoices, err := s.invoices.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	batches, err := s.batches.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}

	byInvoice := make(map[string][]domain.Batch, len(invoices))
	for _, b := range batches {
		byInvoice[b.InvoiceNo] = append(byInvoice[b.InvoiceNo], b)
	}

	details := make([]domain.InvoiceDetail, 0, len(invoices))
	for _, inv := range invoices {
		details = append(details, inv.Detail(byInvoice[inv.InvoiceNo]))
	}
	return details, nil
}

// Add creates an invoice and its batches in one transaction. Any duplicate
// or persistence failure rolls back the whole request.
func (s *InvoiceService) Add(ctx context.Context, invoice *domain.Invoice, batches []domain.Batch) error {
	if invoice == nil {
		return domain.ErrMissingData
	}
	if len(batches) == 0 {
		return domain.ErrNoBatches
	}

	if err := invoice.Validate(); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(batches))
	for i := range batches {
		if err := batches[i].Validate(); err != nil {
			return err
		}
		if _, dup := seen[batches[i].BatchNo]; dup {
			return domain.NewKeyError(domain.ErrDuplicateBatch, batches[i].BatchNo)
		}
		seen[batches[i].BatchNo] = struct{}{}
	}

	now := s.now()
	invoice.PrepareForStorage(now)

	err := s.tx.Transaction(ctx, func(tx pgx.Tx) error {
		invoiceRepo := s.invoices.WithTx(tx)
		batchRepo := s.batches.WithTx(tx)

		exists, err := invoiceRepo.Exists(ctx, invoice.InvoiceNo)
		if err != nil {
			return fmt.Errorf("failed to check invoice: %w", err)
		}
		if exists {
			return domain.NewKeyError(domain.ErrDuplicateInvoice, invoice.InvoiceNo)
		}
		if err := invoiceRepo.Save(ctx, invoice); err != nil {
			return fmt.Errorf("failed to save invoice: %w", err)
		}

		for i := range batches {
			b := &batches[i]
			exists, err := batchRepo.Exists(ctx, b.BatchNo)
			if err != nil {
				return fmt.Errorf("failed to check batch: %w", err)
			}
			if exists {
				return domain.NewKeyError(domain.ErrDuplicateBatch, b.BatchNo)
			}

			b.PrepareForStorage(invoice.InvoiceNo, now)
			if err := batchRepo.Save(ctx, b); err != nil {
				return fmt.Errorf("failed to save batch %s: %w", b.BatchNo, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, "add invoice", invoice.InvoiceNo, err)
		return err
	}

	s.invalidate(ctx)
	s.logger.InfoContext(ctx, "added invoice",
		slog.String("invoice_no", invoice.InvoiceNo),
		slog.Int("batches", len(batches)))

	return nil
}

// Update applies a flat attribute map to the invoice it names. The patch is
// validated before the transaction starts and applied as one write.
func (s *InvoiceService) Update(ctx context.Context, data map[string]any) error {
	patch, err := domain.NewInvoicePatch(data)
	if err != nil {
		return err
	}

	err = s.tx.Transaction(ctx, func(tx pgx.Tx) error {
		repo := s.invoices.WithTx(tx)

		invoice, err := repo.FindByNoForUpdate(ctx, patch.InvoiceNo)
		if err != nil {
			return fmt.Errorf("failed to get invoice: %w", err)
		}
		if invoice == nil {
			return domain.NewKeyError(domain.ErrInvoiceNotFound, patch.InvoiceNo)
		}
		if patch.Empty() {
			return nil
		}

		patch.Apply(invoice)
		if err := invoice.Validate(); err != nil {
			return err
		}
		if err := repo.Update(ctx, invoice); err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, "update invoice", patch.InvoiceNo, err)
		return err
	}

	if !patch.Empty() {
		s.invalidate(ctx)
	}

	fields := make([]string, 0, len(patch.Fields()))
	for _, f := range patch.Fields() {
		fields = append(fields, string(f))
	}
	s.logger.InfoContext(ctx, "updated invoice",
		slog.String("invoice_no", patch.InvoiceNo),
		slog.Any("fields", fields))

	return nil
}

// Delete removes an invoice and cascades to its batches in one transaction.
func (s *InvoiceService) Delete(ctx context.Context, invoiceNo string) error {
	invoiceNo = strings.TrimSpace(invoiceNo)
	if invoiceNo == "" {
		return domain.NewKeyError(domain.ErrMissingData, string(domain.FieldInvoiceNo))
	}

	var removed int64
	err := s.tx.Transaction(ctx, func(tx pgx.Tx) error {
		invoiceRepo := s.invoices.WithTx(tx)

		exists, err := invoiceRepo.Exists(ctx, invoiceNo)
		if err != nil {
			return fmt.Errorf("failed to check invoice: %w", err)
		}
		if !exists {
			return domain.NewKeyError(domain.ErrInvoiceNotFound, invoiceNo)
		}

		removed, err = s.batches.WithTx(tx).DeleteByInvoiceNo(ctx, invoiceNo)
		if err != nil {
			return fmt.Errorf("failed to delete batches: %w", err)
		}
		if err := invoiceRepo.Delete(ctx, invoiceNo); err != nil {
			return fmt.Errorf("failed to delete invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, "delete invoice", invoiceNo, err)
		return err
	}

	s.invalidate(ctx)
	s.logger.InfoContext(ctx, "deleted invoice",
		slog.String("invoice_no", invoiceNo),
		slog.Int64("batches_deleted", removed))

	return nil
}

func (s *InvoiceService) logFailure(ctx context.Context, op, invoiceNo string, err error) {
	level := slog.LevelError
	if domain.IsClientError(err) {
		level = slog.LevelInfo
	}
	s.logger.Log(ctx, level, op+" failed",
		slog.String("invoice_no", invoiceNo),
		slog.String("error", err.Error()))
}

// invalidate drops every cached invoice view. Failures only cost freshness
// until the TTL expires, so they are logged and ignored.
func (s *InvoiceService) invalidate(ctx context.Context) {
	s.generation.Add(1)
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, cachePattern); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate invoice cache",
			slog.String("error", err.Error()))
	}
}

// readThrough serves key from the cache, falling back to fetch and storing
// its result. Cache failures never fail the read.
func readThrough[T any](ctx context.Context, s *InvoiceService, key string, fetch func(context.Context) (T, error)) (T, error) {
	if s.cache != nil {
		var cached T
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, ports.ErrCacheMiss) {
			s.logger.WarnContext(ctx, "cache read failed",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
	}

	generation := s.generation.Load()
	value, err := fetch(ctx)
	if err != nil {
		return value, err
	}

	if s.cache != nil && s.generation.Load() == generation {
		if err := s.cache.Set(ctx, key, value); err != nil {
			s.logger.WarnContext(ctx, "cache write failed",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
	}
	return value, nil
}
