// internal/handlers/export.go
package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/invoices-be/internal/adapters/export"
	"github.com/ammerola/invoices-be/internal/core/domain"
	"github.com/ammerola/invoices-be/internal/core/ports"
	"github.com/ammerola/invoices-be/internal/pkg/logger"
)

// ExportHandler handles export operations
type ExportHandler struct {
	responder
	invoices ports.InvoiceService
	queue    ports.ExportQueue
	logger   *slog.Logger
	now      func() time.Time
}

// NewExportHandler creates a new export handler
func NewExportHandler(invoices ports.InvoiceService, queue ports.ExportQueue, logger *slog.Logger) *ExportHandler {
	logger = logger.With(slog.String("handler", "export"))
	return &ExportHandler{
		responder: responder{logger: logger},
		invoices:  invoices,
		queue:     queue,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ExportExcel handles GET /api/v1/export/excel
func (h *ExportHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	details, err := h.invoices.ListDetailed(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to retrieve invoices for export",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	// Build in memory so a failure can still be reported as JSON.
	var buf bytes.Buffer
	summary, err := export.Write(&buf, details)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate workbook",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to generate Excel file")
		return
	}

	filename := fmt.Sprintf("invoices_%s.xlsx", h.now().Format("20060102_150405"))
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)

	if _, err := buf.WriteTo(w); err != nil {
		h.logger.ErrorContext(ctx, "failed to write workbook response",
			slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "excel export completed",
		slog.Int("invoices", summary.Invoices),
		slog.Int("batches", summary.Batches),
		slog.String("filename", filename))
}

// CreateExportJob handles POST /api/v1/export/jobs
func (h *ExportHandler) CreateExportJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := domain.ExportRequest{
		JobID:       uuid.New().String(),
		RequestedAt: h.now(),
		RequestedBy: logger.RequestIDFromContext(ctx),
	}

	job, err := h.queue.EnqueueExport(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to enqueue export",
			slog.String("job_id", req.JobID),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to schedule export")
		return
	}

	w.Header().Set("Location", "/api/v1/export/jobs/"+job.TaskID)
	h.respondJSON(w, http.StatusAccepted, job)
}

// ExportJobStatus handles GET /api/v1/export/jobs/{task_id}
func (h *ExportHandler) ExportJobStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	taskID := r.PathValue("task_id")

	job, err := h.queue.ExportStatus(ctx, taskID)
	if err != nil {
		if errors.Is(err, ports.ErrJobNotFound) {
			h.respondError(w, http.StatusNotFound, fmt.Sprintf("no such export job '%s'", taskID))
			return
		}
		h.logger.ErrorContext(ctx, "failed to get export status",
			slog.String("task_id", taskID),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to get export status")
		return
	}

	h.respondJSON(w, http.StatusOK, job)
}
