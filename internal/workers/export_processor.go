// internal/workers/export_processor.go
package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/invoices-be/internal/adapters/export"
	"github.com/ammerola/invoices-be/internal/adapters/queue"
	"github.com/ammerola/invoices-be/internal/adapters/storage"
	"github.com/ammerola/invoices-be/internal/core/domain"
	"github.com/ammerola/invoices-be/internal/core/ports"
)

// ExportProcessor builds the invoice workbook and uploads it to object storage.
type ExportProcessor struct {
	invoices  ports.InvoiceService
	storage   ports.ObjectStorage
	keyPrefix string
	urlExpiry time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewExportProcessor creates a new export processor
func NewExportProcessor(invoices ports.InvoiceService, store ports.ObjectStorage, keyPrefix string, urlExpiry time.Duration, logger *slog.Logger) *ExportProcessor {
	return &ExportProcessor{
		invoices:  invoices,
		storage:   store,
		keyPrefix: keyPrefix,
		urlExpiry: urlExpiry,
		logger:    logger.With(slog.String("processor", "export")),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ProcessExport handles queue.TypeExport tasks
func (p *ExportProcessor) ProcessExport(ctx context.Context, t *asynq.Task) error {
	req, err := queue.ParseExportTask(t)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	result, err := p.Export(ctx, req)
	if err != nil {
		return err
	}

	if w := t.ResultWriter(); w != nil {
		data, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to marshal export result: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write export result: %w", err)
		}
	}
	return nil
}

// Export runs one export job end to end.
func (p *ExportProcessor) Export(ctx context.Context, req domain.ExportRequest) (*domain.ExportResult, error) {
	start := p.now()
	logger := p.logger.With(slog.String("job_id", req.JobID))
	logger.InfoContext(ctx, "starting export")

	details, err := p.invoices.ListDetailed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}

	data, summary, err := export.Encode(details)
	if err != nil {
		return nil, err
	}

	at := req.RequestedAt
	if at.IsZero() {
		at = start
	}
	key := storage.ObjectKey(p.keyPrefix, at, req.JobID+".xlsx")

	location, err := p.storage.Upload(ctx, key, bytes.NewReader(data), export.ContentType, map[string]string{
		"job-id":   req.JobID,
		"invoices": strconv.Itoa(summary.Invoices),
		"batches":  strconv.Itoa(summary.Batches),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}

	result := &domain.ExportResult{
		ObjectKey:    key,
		Location:     location,
		InvoiceCount: summary.Invoices,
		BatchCount:   summary.Batches,
		CompletedAt:  p.now(),
	}

	// The object is already stored; a missing link only costs the client a
	// second lookup.
	url, err := p.storage.GetPresignedURL(ctx, key, p.urlExpiry)
	if err != nil {
		logger.WarnContext(ctx, "failed to presign export URL",
			slog.String("key", key),
			slog.String("error", err.Error()))
	} else {
		result.DownloadURL = url
	}

	logger.InfoContext(ctx, "export completed",
		slog.String("key", key),
		slog.Int("invoices", summary.Invoices),
		slog.Int("batches", summary.Batches),
		slog.Duration("duration", result.CompletedAt.Sub(start)))

	return result, nil
}
