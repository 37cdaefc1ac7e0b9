package ports

import (
	"context"
	"errors"

	"github.com/ammerola/invoices-be/internal/core/domain"
)

// ErrJobNotFound is returned when an export job id is unknown to the queue.
var ErrJobNotFound = errors.New("export job not found")

// ExportQueue schedules spreadsheet exports on the background worker.
type ExportQueue interface {
	EnqueueExport(ctx context.Context, req domain.ExportRequest) (*domain.ExportJob, error)
	ExportStatus(ctx context.Context, taskID string) (*domain.ExportJob, error)
}
